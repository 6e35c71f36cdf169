package root

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/musliminonesmart/Gasspoll-Matika/internal/engine"
	"github.com/musliminonesmart/Gasspoll-Matika/internal/license"
	"github.com/musliminonesmart/Gasspoll-Matika/internal/storage"
)

func openDB(ctx context.Context) (*sql.DB, func(), error) {
	path, err := storage.ResolveDBPath()
	if err != nil {
		return nil, nil, err
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	return db, cleanup, nil
}

func openService(ctx context.Context) (*engine.Service, func(), error) {
	db, cleanup, err := openDB(ctx)
	if err != nil {
		return nil, nil, err
	}
	return engine.NewService(db, slog.Default()), cleanup, nil
}

// openGatedService refuses to run until the license is activated.
func openGatedService(ctx context.Context) (*engine.Service, func(), error) {
	db, cleanup, err := openDB(ctx)
	if err != nil {
		return nil, nil, err
	}
	mgr := license.NewManager(db)
	ok, err := mgr.Verify(ctx)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	if !ok {
		cleanup()
		return nil, nil, fmt.Errorf("aplikasi belum aktif; jalankan 'gpm license activate <kode>'")
	}
	return engine.NewService(db, slog.Default()), cleanup, nil
}
