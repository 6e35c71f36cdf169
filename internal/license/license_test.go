package license

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/musliminonesmart/Gasspoll-Matika/internal/storage"
)

func newTestManager(t *testing.T) (*Manager, *time.Time) {
	t.Helper()
	ctx := context.Background()

	db, err := storage.Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Date(2026, 2, 20, 12, 0, 0, 0, time.UTC)
	m := &Manager{
		kv:         storage.NewKV(db),
		now:        func() time.Time { return now },
		deviceLock: true,
	}
	return m, &now
}

func TestValidateCodeFormat(t *testing.T) {
	cases := []struct {
		code string
		ok   bool
	}{
		{"GPM-K5-12345", true},
		{"gpm-k5-12345", true}, // case-insensitive
		{"  GPM-FAMILY-2026  ", true},
		{"ABC-K5-12345", false}, // wrong prefix
		{"GPM-1", false},        // too short
		{"GPM-ABCDEFGH", false}, // no digit
		{"", false},
	}
	for _, tc := range cases {
		err := ValidateCodeFormat(tc.code)
		if tc.ok && err != nil {
			t.Fatalf("ValidateCodeFormat(%q) = %v, want ok", tc.code, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("ValidateCodeFormat(%q) accepted", tc.code)
		}
	}
}

func TestActivateBindsDevice(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	ok, err := m.Verify(ctx)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ok {
		t.Fatalf("unactivated app verified")
	}

	st, err := m.Activate(ctx, "gpm-k5-12345")
	if err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if !st.IsActive {
		t.Fatalf("license not active after Activate")
	}
	if st.Plan != "K5" {
		t.Fatalf("Plan=%q, want K5", st.Plan)
	}
	if st.ExpiresAt != 0 {
		t.Fatalf("lifetime license got expiry %d", st.ExpiresAt)
	}

	device, err := m.DeviceID(ctx)
	if err != nil {
		t.Fatalf("DeviceID: %v", err)
	}
	if st.BoundDeviceID != device {
		t.Fatalf("bound to %q, device is %q", st.BoundDeviceID, device)
	}

	ok, err = m.Verify(ctx)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatalf("activated app failed verification")
	}
}

func TestActivateRejectsForeignDevice(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	if _, err := m.Activate(ctx, "GPM-K4-11111"); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	// Simulate a bundle copied from another machine.
	if err := m.kv.Set(ctx, deviceKey, "some-other-device"); err != nil {
		t.Fatalf("overwrite device id: %v", err)
	}

	ok, err := m.Verify(ctx)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ok {
		t.Fatalf("license verified on a foreign device")
	}
	if _, err := m.Activate(ctx, "GPM-K4-11111"); err == nil {
		t.Fatalf("expected rebind refusal on foreign device")
	}
}

func TestLockoutAfterRepeatedFailures(t *testing.T) {
	m, now := newTestManager(t)
	ctx := context.Background()

	for i := 0; i < MaxAttempts; i++ {
		if _, err := m.Activate(ctx, "BAD-CODE"); err == nil {
			t.Fatalf("bad code accepted on attempt %d", i+1)
		}
	}

	var locked LockedError
	_, err := m.Activate(ctx, "GPM-K5-12345")
	if !errors.As(err, &locked) {
		t.Fatalf("expected LockedError, got %v", err)
	}

	// After the lock window even a good code goes through again.
	*now = now.Add((LockSeconds + 1) * time.Second)
	st, err := m.Activate(ctx, "GPM-K5-12345")
	if err != nil {
		t.Fatalf("Activate after lock expiry: %v", err)
	}
	if !st.IsActive {
		t.Fatalf("license not active after lock expiry")
	}
}

func TestDeactivate(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	if _, err := m.Activate(ctx, "GPM-K6-2026"); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if err := m.Deactivate(ctx); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}
	ok, err := m.Verify(ctx)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ok {
		t.Fatalf("deactivated license still verifies")
	}
}

func TestDisabledGate(t *testing.T) {
	m, _ := newTestManager(t)
	t.Setenv("GPM_LICENSE_DISABLED", "1")

	ok, err := m.Verify(context.Background())
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatalf("disabled gate still blocks")
	}
}

func TestPlanFromCode(t *testing.T) {
	cases := []struct {
		code string
		want string
	}{
		{"GPM-K4-123", "K4"},
		{"GPM-K5-123", "K5"},
		{"GPM-K6-123", "K6"},
		{"GPM-FAMILY-123", "FAMILY"},
		{"GPM-XYZ-123", ""},
	}
	for _, tc := range cases {
		if got := planFromCode(tc.code); got != tc.want {
			t.Fatalf("planFromCode(%q)=%q, want %q", tc.code, got, tc.want)
		}
	}
}

func TestCodeHashStable(t *testing.T) {
	a := codeHash("GPM-K5-12345")
	b := codeHash("GPM-K5-12345")
	if a != b {
		t.Fatalf("hash not deterministic: %q vs %q", a, b)
	}
	if a == codeHash("GPM-K5-12346") {
		t.Fatalf("distinct codes collided")
	}
	if a[0] != 'h' {
		t.Fatalf("hash missing prefix: %q", a)
	}
}
