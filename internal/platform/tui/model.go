package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/ballcore/internal/config"
	"github.com/vovakirdan/ballcore/internal/core"
	"github.com/vovakirdan/ballcore/internal/scenario"
	"github.com/vovakirdan/ballcore/internal/sim"
	"github.com/vovakirdan/ballcore/internal/storage"
)

// maxLoggedEvents bounds the event log kept for saving a run.
const maxLoggedEvents = 50000

// Model is the Bubble Tea model for watching a scenario.
type Model struct {
	scenario   scenario.Scenario
	cfg        config.Config
	runtime    core.RuntimeConfig
	world      *sim.World
	screen     *core.Screen
	store      *storage.Store
	keys       ViewerKeyMap
	help       help.Model
	inputFrame core.InputFrame
	events     []sim.Event
	status     string
	quitting   bool
	backToMenu bool
	quitOnBack bool // Standalone viewer with no menu to return to
}

// NewModel creates a viewer for s. A zero seed picks one from the clock.
func NewModel(s scenario.Scenario, cfg config.Config, store *storage.Store, rt core.RuntimeConfig) (Model, error) {
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	if rt.TickRate <= 0 {
		rt.TickRate = cfg.Sim.TickRate
	}

	m := Model{
		scenario:   s,
		cfg:        cfg,
		runtime:    rt,
		screen:     core.NewScreen(rt.ScreenW, max(rt.ScreenH-1, 0)),
		store:      store,
		keys:       DefaultViewerKeyMap(),
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
	}
	m.help.Width = rt.ScreenW

	if err := m.reset(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// reset rebuilds the world from the scenario.
func (m *Model) reset() error {
	w, err := m.scenario.Build(m.cfg, m.runtime.Seed)
	if err != nil {
		return err
	}
	m.world = w
	m.events = m.events[:0]
	m.status = ""
	return nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.runtime.ScreenW = msg.Width
		m.runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-1, 0))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		if m.quitOnBack {
			m.quitting = true
			return m, tea.Quit
		}
		m.backToMenu = true
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Save):
		m.saveRun()
		return m, nil
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	}

	if action := m.keys.MapKey(msg); action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleTick steps the simulation once.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	if m.inputFrame.Has(core.ActionReset) {
		if err := m.reset(); err != nil {
			m.status = err.Error()
		}
		m.inputFrame.Clear()
		return m, tickCmd(m.runtime.TickRate)
	}

	result := m.world.Step(m.inputFrame)
	if room := maxLoggedEvents - len(m.events); room > 0 {
		m.events = append(m.events, result.Events[:min(room, len(result.Events))]...)
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.runtime.TickRate)
}

// saveRun stores the run so far with its event log.
func (m *Model) saveRun() {
	if m.store == nil {
		m.status = "no database"
		return
	}
	run := storage.NewRunRecord(m.scenario.ID, m.world)
	if _, err := m.store.SaveRun(&run, storage.EventRecords(m.events)); err != nil {
		m.status = err.Error()
		return
	}
	m.status = "saved " + run.RunID[:8]
}

// saveScreenshot writes the current screen to ~/.ballcore/screenshots.
func (m *Model) saveScreenshot() {
	m.world.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".ballcore", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.scenario.ID, timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.status = err.Error()
		return
	}
	m.status = "screenshot " + filepath.Base(path)
}

// View renders the world and the help bar.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.world.Render(m.screen)
	out := RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
	if m.status != "" {
		out += "  " + statusStyle.Render(m.status)
	}
	return out
}

// World returns the simulation being viewed.
func (m Model) World() *sim.World {
	return m.world
}

// Events returns the events logged since the last reset.
func (m Model) Events() []sim.Event {
	return m.events
}

// Status returns the last status message.
func (m Model) Status() string {
	return m.status
}

// IsQuitting returns true if the user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user requested to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the viewer for s in the alternate screen.
func Run(s scenario.Scenario, cfg config.Config, store *storage.Store, rt core.RuntimeConfig) error {
	model, err := NewModel(s, cfg, store, rt)
	if err != nil {
		return err
	}

	model.quitOnBack = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
