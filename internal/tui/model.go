package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/musliminonesmart/Gasspoll-Matika/internal/engine"
	"github.com/musliminonesmart/Gasspoll-Matika/internal/ui"
)

type boardModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	date    string
	tasks   []engine.Task
	state   engine.State
	toasts  []engine.Unlock
	cfg     engine.RamadanConfig
	haveCfg bool

	selected int
	lastLog  string
	loading  bool
	err      error
}

type loadedMsg struct {
	date    string
	tasks   []engine.Task
	state   engine.State
	unlocks []engine.Unlock
	cfg     engine.RamadanConfig
	err     error
}

type toggledMsg struct {
	res *engine.ToggleResult
	err error
}

func newBoardModel(ctx context.Context, svc *engine.Service, date string) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		date:    date,
		loading: true,
		lastLog: "Memuat...",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd(m.date)
}

func (m boardModel) loadCmd(date string) tea.Cmd {
	return func() tea.Msg {
		tasks, st, unlocks, err := m.svc.Day(m.ctx, date)
		if err != nil {
			return loadedMsg{date: date, err: err}
		}
		cfg, err := m.svc.Config(m.ctx)
		if err != nil {
			return loadedMsg{date: date, err: err}
		}
		return loadedMsg{date: date, tasks: tasks, state: st, unlocks: unlocks, cfg: cfg}
	}
}

func (m boardModel) toggleCmd(id string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.Toggle(m.ctx, m.date, id)
		return toggledMsg{res: res, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Gagal memuat: " + msg.err.Error()
			return m, nil
		}
		m.date = msg.date
		m.tasks = msg.tasks
		m.state = msg.state
		m.cfg = msg.cfg
		m.haveCfg = true
		m.toasts = append(m.toasts, msg.unlocks...)
		if m.selected >= len(m.tasks) {
			m.selected = 0
		}
		m.lastLog = "Siap."
		return m, nil

	case toggledMsg:
		if msg.err != nil {
			m.lastLog = "Gagal: " + msg.err.Error()
			return m, nil
		}
		m.state = msg.res.State
		m.toasts = append(m.toasts, msg.res.Unlocks...)
		for i := range m.tasks {
			if m.tasks[i].ID == msg.res.Task.ID {
				m.tasks[i] = msg.res.Task
			}
		}
		m.lastLog = fmt.Sprintf("Poin hari ini: +%d", msg.res.Stat.DailyPoints+msg.res.Stat.BonusPoints)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
		case "down", "j":
			if m.selected < len(m.tasks)-1 {
				m.selected++
			}
		case " ", "enter":
			if len(m.toasts) > 0 {
				// Dismiss the front toast first; unlocks show one at a time.
				m.toasts = m.toasts[1:]
				return m, nil
			}
			if m.selected < len(m.tasks) {
				return m, m.toggleCmd(m.tasks[m.selected].ID)
			}
		case "left", "h":
			return m.shiftDay(-1)
		case "right", "l":
			return m.shiftDay(1)
		}
		return m, nil
	}
	return m, nil
}

func (m boardModel) shiftDay(days int) (tea.Model, tea.Cmd) {
	t, err := time.Parse(engine.DateLayout, m.date)
	if err != nil {
		return m, nil
	}
	next := t.AddDate(0, 0, days).Format(engine.DateLayout)
	m.loading = true
	m.selected = 0
	return m, m.loadCmd(next)
}

func (m boardModel) View() string {
	var b strings.Builder

	header := ui.Heading(ui.IconMoon, "To-Do Ramadan — "+m.date)
	if m.haveCfg {
		if n := engine.DayNumber(m.date, m.cfg); n > 0 {
			header += ui.Muted.Render(fmt.Sprintf("  (Ramadan ke-%d)", n))
		}
	}
	b.WriteString(header + "\n\n")

	if m.err != nil {
		b.WriteString(ui.Bad.Render(ui.IconError+" "+m.err.Error()) + "\n")
		return b.String()
	}
	if m.loading {
		b.WriteString(ui.Muted.Render("Memuat...") + "\n")
		return b.String()
	}

	for i, t := range m.tasks {
		cursor := "  "
		if i == m.selected {
			cursor = ui.SelectedRow.Render("> ")
		}
		text := t.Text
		if t.Completed {
			text = ui.DoneText.Render(text)
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", cursor, ui.Checkbox(t.Completed), text))
	}

	stat := m.state.DailyStats[m.date]
	footer := fmt.Sprintf("%s %d pts  %s %d hari  %s %s",
		ui.IconTrophy, m.state.TotalPoints,
		ui.IconFlame, m.state.CurrentStreak,
		ui.IconStar, engine.LevelForPoints(m.state.TotalPoints).Name)
	day := fmt.Sprintf("Hari ini: wajib %d/%d, target %d/%d, +%d pts",
		stat.WajibDone, stat.WajibTotal, stat.TargetDone, stat.TargetTotal,
		stat.DailyPoints+stat.BonusPoints)
	b.WriteString("\n" + ui.Panel.Render(footer+"\n"+ui.Muted.Render(day)) + "\n")

	if len(m.toasts) > 0 {
		toast := m.toasts[0]
		icon := ui.IconTrophy
		if toast.Kind == engine.UnlockLevel {
			icon = ui.IconStar
		}
		b.WriteString(ui.Panel.Render(ui.Gold.Render(icon+" "+toast.Title)+"\n"+toast.Desc) + "\n")
		b.WriteString(ui.Muted.Render("(spasi untuk lanjut)") + "\n")
	} else {
		b.WriteString(ui.Muted.Render("↑/↓ pilih • spasi centang • ←/→ ganti hari • q keluar") + "\n")
	}
	if m.lastLog != "" {
		b.WriteString(ui.Muted.Render(m.lastLog) + "\n")
	}
	return b.String()
}
