package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/kinesim/internal/experiment"
	"github.com/san-kum/kinesim/internal/physics"
	"github.com/san-kum/kinesim/internal/vmath"
)

const (
	sceneWidth  = 40
	sceneHeight = 14
	plotWidth   = 60
	plotHeight  = 8
)

type TickMsg time.Time

// Scope redraws the scene canvas after every simulator tick.
type Scope struct {
	canvas  *Canvas
	sprites []*Sprite
	view    Viewport
}

func NewScope(sprites []*Sprite, w, h int) *Scope {
	s := &Scope{canvas: NewCanvas(w, h), sprites: sprites}
	s.Fit()
	return s
}

// Fit recomputes the viewport around every sprite and its extent.
func (s *Scope) Fit() {
	var pts []vmath.Vec2
	for _, sp := range s.sprites {
		half := sp.Size.Scale(0.5)
		pts = append(pts, sp.Position.Sub(half), sp.Position.Add(half))
	}
	s.view = FitViewport(pts, 0.25)
}

func (s *Scope) Draw() {
	for _, sp := range s.sprites {
		if !s.view.Contains(sp.Position) {
			s.view = s.view.Extend(sp.Position)
		}
	}
	s.canvas.Clear()
	for _, sp := range s.sprites {
		sp.Draw(s.canvas, s.view)
	}
}

func (s *Scope) Reset() {
	for _, sp := range s.sprites {
		sp.ClearTrail()
	}
	s.Fit()
	s.Draw()
}

func (s *Scope) String() string { return s.canvas.String() }

// Model steps an experiment in real time and renders its scene and graphs.
type Model struct {
	exp           *experiment.Experiment
	scope         *Scope
	running       bool
	done          bool
	invalid       bool
	selected      int
	showHelp      bool
	frame         time.Duration
	stepsPerFrame int
}

// NewModel attaches a sprite to every scene object and rewinds the
// simulator.
func NewModel(exp *experiment.Experiment) Model {
	cfg := exp.Config()
	var sprites []*Sprite
	for _, o := range exp.Scene().Objects() {
		sp := NewSprite(o.Name(), DefaultTrail)
		o.SetSprite(sp)
		sprites = append(sprites, sp)
	}
	scope := NewScope(sprites, sceneWidth, sceneHeight)
	exp.Simulator().AddRenderer(scope)
	exp.Simulator().Reset()
	scope.Reset()

	fps := cfg.FPS
	if fps <= 0 {
		fps = 30
	}
	frame := time.Second / time.Duration(fps)
	spf := int(math.Round(frame.Seconds() / cfg.Dt))
	if spf < 1 {
		spf = 1
	}

	return Model{
		exp:           exp,
		scope:         scope,
		running:       true,
		frame:         frame,
		stepsPerFrame: spf,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			if !m.done {
				m.running = !m.running
			}
		case "r":
			m.reset()
		case "tab":
			if n := len(m.exp.Graphs()); n > 0 {
				m.selected = (m.selected + 1) % n
			}
		case "t":
			NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

// step advances one frame worth of ticks, stopping at the configured
// duration or on an invalid state.
func (m *Model) step() {
	cfg := m.exp.Config()
	sim := m.exp.Simulator()
	total := int(math.Round(cfg.Duration / cfg.Dt))
	for i := 0; i < m.stepsPerFrame; i++ {
		if sim.Steps() >= total {
			m.running, m.done = false, true
			return
		}
		sim.Tick(cfg.Dt)
		if cfg.ValidateState && !m.exp.Scene().Valid() {
			m.running, m.invalid = false, true
			return
		}
	}
	if sim.Steps() >= total {
		m.running, m.done = false, true
	}
}

func (m *Model) reset() {
	m.exp.Simulator().Reset()
	m.scope.Reset()
	m.running, m.done, m.invalid = true, false, false
}

func (m Model) status() string {
	switch {
	case m.invalid:
		return "INVALID"
	case m.done:
		return "DONE"
	case !m.running:
		return "PAUSED"
	}
	return "RUNNING"
}

func (m Model) Running() bool { return m.running }
func (m Model) Done() bool    { return m.done }
func (m Model) Selected() int { return m.selected }

// View renders the TUI interface.
func (m Model) View() string {
	cfg := m.exp.Config()
	sim := m.exp.Simulator()

	var stats strings.Builder
	st := m.status()
	stats.WriteString(statusStyle(st).Render(st) + "\n\n")
	stats.WriteString(row("time", "%.3f s", sim.Time()) + "\n")
	stats.WriteString(row("steps", "%d", sim.Steps()) + "\n")
	stats.WriteString(ProgressBar(sim.Time()/cfg.Duration, 24) + "\n\n")
	for _, o := range m.exp.Scene().Objects() {
		stats.WriteString(headerStyle().Render(o.Name()) + "\n")
		if p, ok := physics.Lookup[*physics.Position](o, physics.KindPosition); ok {
			v := p.Value()
			stats.WriteString(row("position", "(%.2f, %.2f)", v.X, v.Y) + "\n")
		}
		if p, ok := physics.Lookup[*physics.Velocity](o, physics.KindVelocity); ok {
			v := p.Value()
			stats.WriteString(row("velocity", "(%.2f, %.2f)", v.X, v.Y) + "\n")
		}
		if p, ok := physics.Lookup[*physics.Acceleration](o, physics.KindAcceleration); ok {
			v := p.Value()
			stats.WriteString(row("acceleration", "(%.2f, %.2f)", v.X, v.Y) + "\n")
		}
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle().Render(m.scope.String()),
		statsStyle().Render(stats.String()),
	)

	var s strings.Builder
	s.WriteString(headerStyle().Render("KINESIM") + "\n")
	s.WriteString(top + "\n")

	if graphs := m.exp.Graphs(); len(graphs) > 0 {
		g := graphs[m.selected%len(graphs)]
		title := fmt.Sprintf("[%d/%d] %s", m.selected%len(graphs)+1, len(graphs), g.Title())
		s.WriteString(graphStyle().Render(Plot(title, g.Points(), plotWidth, plotHeight)) + "\n")
	}

	if m.showHelp {
		s.WriteString(helpStyle().Render("space pause · r reset · tab graph · t theme · ? help · q quit"))
	} else {
		s.WriteString(helpStyle().Render("? help"))
	}
	return s.String()
}
