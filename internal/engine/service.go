package engine

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/musliminonesmart/Gasspoll-Matika/internal/storage"
)

// Persisted bundle keys. The reward bundle and the Ramadan configuration
// live under separate keys so a corrupt one cannot take the other down.
const (
	rewardsKey = "gp_ramadan_rewards"
	configKey  = "gp_ramadan_config"
	profileKey = "gp_profile"
)

// Bundle is the persisted reward state layout: the checklist history plus
// the cached aggregate derived from it.
type Bundle struct {
	Progress   map[string][]Task    `json:"progress"`
	Points     int                  `json:"points"`
	Streak     int                  `json:"streak"`
	BestStreak int                  `json:"bestStreak"`
	Badges     []Badge              `json:"badges"`
	Stats      map[string]DailyStat `json:"stats"`
}

func emptyBundle() Bundle {
	return Bundle{
		Progress: map[string][]Task{},
		Stats:    map[string]DailyStat{},
	}
}

func (b Bundle) state() State {
	return State{
		TotalPoints:   b.Points,
		CurrentStreak: b.Streak,
		BestStreak:    b.BestStreak,
		Badges:        b.Badges,
		DailyStats:    b.Stats,
	}
}

// Service owns the checklist history and runs the rewards engine over it
// after every mutation, saving synchronously so a reload reconstructs
// identical derived state.
type Service struct {
	kv  *storage.KV
	log *slog.Logger
	now func() time.Time
}

func NewService(db *sql.DB, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		kv:  storage.NewKV(db),
		log: log,
		now: time.Now,
	}
}

// ToggleResult reports one mutation: the new aggregate, the mutated day's
// stat, and any unlocks the recomputation fired.
type ToggleResult struct {
	Date    string
	Task    Task
	State   State
	Stat    DailyStat
	Unlocks []Unlock
}

func (s *Service) loadBundle(ctx context.Context) (Bundle, error) {
	raw, ok, err := s.kv.Get(ctx, rewardsKey)
	if err != nil {
		return Bundle{}, err
	}
	if !ok {
		return emptyBundle(), nil
	}
	var b Bundle
	if err := json.Unmarshal([]byte(raw), &b); err != nil {
		// Corrupt bundle: start from defaults rather than failing the app.
		s.log.Warn("reward bundle corrupt, resetting", slog.String("error", err.Error()))
		return emptyBundle(), nil
	}
	if b.Progress == nil {
		b.Progress = map[string][]Task{}
	}
	if b.Stats == nil {
		b.Stats = map[string]DailyStat{}
	}
	return b, nil
}

func (s *Service) saveBundle(ctx context.Context, b Bundle) error {
	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("marshal reward bundle: %w", err)
	}
	return s.kv.Set(ctx, rewardsKey, string(data))
}

// recomputeAndSave rebuilds the aggregate from the full history and saves
// the bundle. On a validation error nothing is written, so the previously
// persisted state stays authoritative.
func (s *Service) recomputeAndSave(ctx context.Context, b Bundle) (Bundle, []Unlock, error) {
	st, unlocks, err := Recompute(b.Progress, b.state(), s.now())
	if err != nil {
		return Bundle{}, nil, err
	}
	b.Points = st.TotalPoints
	b.Streak = st.CurrentStreak
	b.BestStreak = st.BestStreak
	b.Badges = st.Badges
	b.Stats = st.DailyStats
	if err := s.saveBundle(ctx, b); err != nil {
		return Bundle{}, nil, err
	}
	s.log.Debug("rewards recomputed",
		slog.Int("points", st.TotalPoints),
		slog.Int("streak", st.CurrentStreak),
		slog.Int("unlocks", len(unlocks)))
	return b, unlocks, nil
}

// Day returns the checklist for a date, seeding the default template on
// first access. Seeding is a mutation: the history is recomputed and saved.
func (s *Service) Day(ctx context.Context, date string) ([]Task, State, []Unlock, error) {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return nil, State{}, nil, ValidationError{Date: date, Reason: "date must be YYYY-MM-DD"}
	}
	b, err := s.loadBundle(ctx)
	if err != nil {
		return nil, State{}, nil, err
	}
	if tasks, ok := b.Progress[date]; ok {
		return tasks, b.state(), nil, nil
	}

	cfg, err := s.Config(ctx)
	if err != nil {
		return nil, State{}, nil, err
	}
	profile, err := s.Profile(ctx)
	if err != nil {
		return nil, State{}, nil, err
	}
	b.Progress[date] = DayPlan(date, cfg, profile.Grade)
	b, unlocks, err := s.recomputeAndSave(ctx, b)
	if err != nil {
		return nil, State{}, nil, err
	}
	return b.Progress[date], b.state(), unlocks, nil
}

// SetDone marks one task done/undone and recomputes over the whole history.
func (s *Service) SetDone(ctx context.Context, date, taskID string, done bool) (*ToggleResult, error) {
	return s.mutateTask(ctx, date, taskID, func(t *Task) { t.Completed = done })
}

// Toggle flips one task's completion.
func (s *Service) Toggle(ctx context.Context, date, taskID string) (*ToggleResult, error) {
	return s.mutateTask(ctx, date, taskID, func(t *Task) { t.Completed = !t.Completed })
}

func (s *Service) mutateTask(ctx context.Context, date, taskID string, mutate func(*Task)) (*ToggleResult, error) {
	b, err := s.loadBundle(ctx)
	if err != nil {
		return nil, err
	}
	tasks, ok := b.Progress[date]
	if !ok {
		return nil, fmt.Errorf("no checklist for %s", date)
	}

	// The day's list is replaced wholesale, never patched in place.
	newList := append([]Task(nil), tasks...)
	idx := -1
	for i := range newList {
		if newList[i].ID == taskID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("task %q not found on %s", taskID, date)
	}
	mutate(&newList[idx])
	b.Progress[date] = newList

	b, unlocks, err := s.recomputeAndSave(ctx, b)
	if err != nil {
		return nil, err
	}
	return &ToggleResult{
		Date:    date,
		Task:    newList[idx],
		State:   b.state(),
		Stat:    b.Stats[date],
		Unlocks: unlocks,
	}, nil
}

// AddTask appends a freeform task to a day's checklist. The category is
// detected from the text once, here; plain text yields an extra item that
// never affects points.
func (s *Service) AddTask(ctx context.Context, date, text string) (*ToggleResult, error) {
	if text == "" {
		return nil, fmt.Errorf("task text is required")
	}
	b, err := s.loadBundle(ctx)
	if err != nil {
		return nil, err
	}
	task := Task{
		ID:       uuid.NewString(),
		Text:     text,
		Category: DetectCategory(text),
	}
	b.Progress[date] = append(append([]Task(nil), b.Progress[date]...), task)

	b, unlocks, err := s.recomputeAndSave(ctx, b)
	if err != nil {
		return nil, err
	}
	return &ToggleResult{
		Date:    date,
		Task:    task,
		State:   b.state(),
		Stat:    b.Stats[date],
		Unlocks: unlocks,
	}, nil
}

// RemoveTask deletes a task from a day's checklist.
func (s *Service) RemoveTask(ctx context.Context, date, taskID string) (*ToggleResult, error) {
	b, err := s.loadBundle(ctx)
	if err != nil {
		return nil, err
	}
	tasks, ok := b.Progress[date]
	if !ok {
		return nil, fmt.Errorf("no checklist for %s", date)
	}
	var removed Task
	newList := make([]Task, 0, len(tasks))
	found := false
	for _, t := range tasks {
		if t.ID == taskID {
			removed = t
			found = true
			continue
		}
		newList = append(newList, t)
	}
	if !found {
		return nil, fmt.Errorf("task %q not found on %s", taskID, date)
	}
	b.Progress[date] = newList

	b, unlocks, err := s.recomputeAndSave(ctx, b)
	if err != nil {
		return nil, err
	}
	return &ToggleResult{
		Date:    date,
		Task:    removed,
		State:   b.state(),
		Stat:    b.Stats[date],
		Unlocks: unlocks,
	}, nil
}

// State returns the current aggregate reward state as persisted.
func (s *Service) State(ctx context.Context) (State, error) {
	b, err := s.loadBundle(ctx)
	if err != nil {
		return State{}, err
	}
	return b.state(), nil
}

// Config returns the Ramadan start configuration, defaulting to today /
// Pemerintah when nothing is stored yet.
func (s *Service) Config(ctx context.Context) (RamadanConfig, error) {
	def := RamadanConfig{
		StartDate: s.now().Format(DateLayout),
		StartMode: StartModePemerintah,
	}
	raw, ok, err := s.kv.Get(ctx, configKey)
	if err != nil {
		return RamadanConfig{}, err
	}
	if !ok {
		return def, nil
	}
	var cfg RamadanConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		s.log.Warn("ramadan config corrupt, using defaults", slog.String("error", err.Error()))
		return def, nil
	}
	if cfg.StartDate == "" {
		cfg.StartDate = def.StartDate
	}
	if !cfg.StartMode.IsValid() {
		cfg.StartMode = def.StartMode
	}
	return cfg, nil
}

func (s *Service) SetConfig(ctx context.Context, cfg RamadanConfig) error {
	if _, err := time.Parse(DateLayout, cfg.StartDate); err != nil {
		return fmt.Errorf("start date must be YYYY-MM-DD")
	}
	if !cfg.StartMode.IsValid() {
		return fmt.Errorf("start mode must be Pemerintah, Ortu or Custom")
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return s.kv.Set(ctx, configKey, string(data))
}

// Profile returns the stored student profile, zero-valued when absent.
func (s *Service) Profile(ctx context.Context) (Profile, error) {
	raw, ok, err := s.kv.Get(ctx, profileKey)
	if err != nil {
		return Profile{}, err
	}
	if !ok {
		return Profile{Grade: DefaultGrade}, nil
	}
	var p Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		s.log.Warn("profile corrupt, using defaults", slog.String("error", err.Error()))
		return Profile{Grade: DefaultGrade}, nil
	}
	if !p.Grade.IsValid() {
		p.Grade = DefaultGrade
	}
	return p, nil
}

func (s *Service) SetProfile(ctx context.Context, p Profile) error {
	if !p.Grade.IsValid() {
		return fmt.Errorf("grade must be 4, 5 or 6")
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	return s.kv.Set(ctx, profileKey, string(data))
}

// ReportRow is one line of the 30-day parent report.
type ReportRow struct {
	DayNum  int
	Date    string
	HasStat bool
	Stat    DailyStat
}

// Report builds the 30-day achievement table from the configured start.
func (s *Service) Report(ctx context.Context) ([]ReportRow, State, RamadanConfig, error) {
	b, err := s.loadBundle(ctx)
	if err != nil {
		return nil, State{}, RamadanConfig{}, err
	}
	cfg, err := s.Config(ctx)
	if err != nil {
		return nil, State{}, RamadanConfig{}, err
	}
	start, err := time.Parse(DateLayout, cfg.StartDate)
	if err != nil {
		return nil, State{}, RamadanConfig{}, fmt.Errorf("parse start date: %w", err)
	}

	rows := make([]ReportRow, 0, 30)
	for i := 0; i < 30; i++ {
		date := start.AddDate(0, 0, i).Format(DateLayout)
		stat, ok := b.Stats[date]
		rows = append(rows, ReportRow{
			DayNum:  i + 1,
			Date:    date,
			HasStat: ok,
			Stat:    stat,
		})
	}
	return rows, b.state(), cfg, nil
}
