// Package license implements the offline activation gate. Validation is
// format-only plus device binding; there is no cryptographic licensing.
package license

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/musliminonesmart/Gasspoll-Matika/internal/storage"
)

const (
	Prefix        = "GPM"
	CodeMinLength = 10
	MaxAttempts   = 5
	LockSeconds   = 60
	// ExpiryDays of 0 means a lifetime license.
	ExpiryDays = 0
)

// Persisted keys.
const (
	licenseKey  = "gpm_license_v1"
	attemptsKey = "gpm_license_attempts"
	deviceKey   = "gpm_device_id_v1"
)

// State is the persisted license record.
type State struct {
	IsActive      bool   `json:"isActive"`
	CodeHash      string `json:"codeHash,omitempty"`
	BoundDeviceID string `json:"boundDeviceId,omitempty"`
	ActivatedAt   int64  `json:"activatedAt,omitempty"`
	ExpiresAt     int64  `json:"expiresAt,omitempty"`
	Plan          string `json:"plan,omitempty"`
}

type attempts struct {
	Count     int   `json:"count"`
	LockUntil int64 `json:"lockUntil"`
}

// LockedError is returned while the attempt lockout is in effect.
type LockedError struct {
	Remaining time.Duration
}

func (e LockedError) Error() string {
	return fmt.Sprintf("terlalu banyak percobaan, coba lagi dalam %d detik", int(e.Remaining.Seconds())+1)
}

// Manager gates the app behind an activated license bound to this device.
type Manager struct {
	kv         *storage.KV
	now        func() time.Time
	deviceLock bool
}

func NewManager(db *sql.DB) *Manager {
	return &Manager{
		kv:         storage.NewKV(db),
		now:        time.Now,
		deviceLock: true,
	}
}

// Enabled reports whether the gate applies. GPM_LICENSE_DISABLED=1 turns it
// off, mirroring the build-time switch of the original.
func Enabled() bool {
	return os.Getenv("GPM_LICENSE_DISABLED") != "1"
}

// DeviceID returns this device's id, generating and persisting one on
// first use.
func (m *Manager) DeviceID(ctx context.Context) (string, error) {
	id, ok, err := m.kv.Get(ctx, deviceKey)
	if err != nil {
		return "", err
	}
	if ok && id != "" {
		return id, nil
	}
	id = uuid.NewString()
	if err := m.kv.Set(ctx, deviceKey, id); err != nil {
		return "", err
	}
	return id, nil
}

// Load returns the stored license state; absent or corrupt data yields the
// inactive default.
func (m *Manager) Load(ctx context.Context) (State, error) {
	raw, ok, err := m.kv.Get(ctx, licenseKey)
	if err != nil {
		return State{}, err
	}
	if !ok {
		return State{}, nil
	}
	var st State
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		return State{}, nil
	}
	return st, nil
}

// Verify reports whether the app is currently authorized: active license,
// bound to this device, not expired.
func (m *Manager) Verify(ctx context.Context) (bool, error) {
	if !Enabled() {
		return true, nil
	}
	st, err := m.Load(ctx)
	if err != nil {
		return false, err
	}
	if !st.IsActive {
		return false, nil
	}
	if m.deviceLock && st.BoundDeviceID != "" {
		id, err := m.DeviceID(ctx)
		if err != nil {
			return false, err
		}
		if st.BoundDeviceID != id {
			return false, nil
		}
	}
	if st.ExpiresAt > 0 && m.now().UnixMilli() > st.ExpiresAt {
		return false, nil
	}
	return true, nil
}

// ValidateCodeFormat checks the offline code rules: GPM- prefix, minimum
// length, at least one digit and one dash.
func ValidateCodeFormat(code string) error {
	c := strings.ToUpper(strings.TrimSpace(code))
	if !strings.HasPrefix(c, Prefix+"-") {
		return fmt.Errorf("kode harus diawali %s-", Prefix)
	}
	if len(c) < CodeMinLength {
		return fmt.Errorf("kode terlalu pendek, periksa kembali")
	}
	if !strings.ContainsAny(c, "0123456789") {
		return fmt.Errorf("kode tidak valid, pastikan format benar (contoh: %s-XXXX-1234)", Prefix)
	}
	return nil
}

// Activate validates the code and binds the license to this device. Failed
// attempts count toward a temporary lockout.
func (m *Manager) Activate(ctx context.Context, code string) (State, error) {
	now := m.now()

	att, err := m.loadAttempts(ctx)
	if err != nil {
		return State{}, err
	}
	if att.LockUntil > 0 && now.UnixMilli() < att.LockUntil {
		return State{}, LockedError{Remaining: time.Duration(att.LockUntil-now.UnixMilli()) * time.Millisecond}
	}

	current, err := m.Load(ctx)
	if err != nil {
		return State{}, err
	}
	if current.IsActive && m.deviceLock && current.BoundDeviceID != "" {
		id, err := m.DeviceID(ctx)
		if err != nil {
			return State{}, err
		}
		if current.BoundDeviceID != id {
			return State{}, fmt.Errorf("kode sudah terikat ke perangkat lain, hubungi admin untuk reset")
		}
		return current, nil
	}

	if err := ValidateCodeFormat(code); err != nil {
		if recErr := m.recordFailedAttempt(ctx, now); recErr != nil {
			return State{}, recErr
		}
		return State{}, err
	}

	deviceID, err := m.DeviceID(ctx)
	if err != nil {
		return State{}, err
	}

	clean := strings.ToUpper(strings.TrimSpace(code))
	var expiresAt int64
	if ExpiryDays > 0 {
		expiresAt = now.Add(ExpiryDays * 24 * time.Hour).UnixMilli()
	}
	next := State{
		IsActive:      true,
		CodeHash:      codeHash(clean),
		BoundDeviceID: deviceID,
		ActivatedAt:   now.UnixMilli(),
		ExpiresAt:     expiresAt,
		Plan:          planFromCode(clean),
	}

	data, err := json.Marshal(next)
	if err != nil {
		return State{}, fmt.Errorf("marshal license: %w", err)
	}
	v := string(data)
	// License write and attempt-counter reset go together.
	if err := m.kv.Apply(ctx, map[string]*string{
		licenseKey:  &v,
		attemptsKey: nil,
	}); err != nil {
		return State{}, err
	}
	return next, nil
}

// Deactivate clears the stored license.
func (m *Manager) Deactivate(ctx context.Context) error {
	return m.kv.Delete(ctx, licenseKey)
}

func (m *Manager) loadAttempts(ctx context.Context) (attempts, error) {
	raw, ok, err := m.kv.Get(ctx, attemptsKey)
	if err != nil {
		return attempts{}, err
	}
	if !ok {
		return attempts{}, nil
	}
	var a attempts
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		return attempts{}, nil
	}
	return a, nil
}

func (m *Manager) recordFailedAttempt(ctx context.Context, now time.Time) error {
	a, err := m.loadAttempts(ctx)
	if err != nil {
		return err
	}
	if a.LockUntil > 0 && now.UnixMilli() > a.LockUntil {
		a = attempts{}
	}
	a.Count++
	if a.Count >= MaxAttempts {
		a.LockUntil = now.Add(LockSeconds * time.Second).UnixMilli()
	}
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal attempts: %w", err)
	}
	return m.kv.Set(ctx, attemptsKey, string(data))
}

// codeHash is the original 32-bit string hash, kept verbatim so existing
// stored licenses keep verifying.
func codeHash(input string) string {
	var h int32
	for _, r := range input {
		h = (h << 5) - h + int32(r)
	}
	if h < 0 {
		h = -h
	}
	return fmt.Sprintf("h%d", h)
}

func planFromCode(code string) string {
	switch {
	case strings.Contains(code, "-K4-"):
		return "K4"
	case strings.Contains(code, "-K5-"):
		return "K5"
	case strings.Contains(code, "-K6-"):
		return "K6"
	case strings.Contains(code, "FAMILY"):
		return "FAMILY"
	default:
		return ""
	}
}
