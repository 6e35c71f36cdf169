package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/musliminonesmart/Gasspoll-Matika/internal/engine"
)

// RunBoard opens the interactive daily checklist board.
func RunBoard(ctx context.Context, svc *engine.Service, date string, out io.Writer) error {
	m := newBoardModel(ctx, svc, date)
	p := tea.NewProgram(m, tea.WithOutput(out))
	_, err := p.Run()
	return err
}
