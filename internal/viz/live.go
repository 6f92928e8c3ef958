package viz

import (
	"fmt"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/newsorbit/internal/dynamo"
	"github.com/san-kum/newsorbit/internal/sim"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 300
	eventCapacity   = 5
	frameRate       = 30
)

type TickMsg time.Time

// eventLog keeps the last few world events for the side panel.
type eventLog struct {
	mu       sync.Mutex
	lines    []string
	absorbed int
}

func (l *eventLog) OnEvent(e dynamo.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch e.Kind {
	case dynamo.EventCollisionResolved:
		l.absorbed++
		l.push(fmt.Sprintf("t%d %s absorbed %s", e.Tick, e.OtherID, e.ID))
	case dynamo.EventBodyAdded:
		l.push(fmt.Sprintf("t%d + %s", e.Tick, e.ID))
	case dynamo.EventBodyRemoved:
		if e.Reason == dynamo.RemovedExplicit {
			l.push(fmt.Sprintf("t%d - %s", e.Tick, e.ID))
		}
	}
}

func (l *eventLog) push(s string) {
	l.lines = append(l.lines, s)
	if len(l.lines) > eventCapacity {
		l.lines = l.lines[1:]
	}
}

func (l *eventLog) snapshot() ([]string, int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...), l.absorbed
}

// Model is the live view: it ticks the world once per frame and draws it.
type Model struct {
	world         *sim.World
	title         string
	canvas        *Canvas
	camera        *Camera
	theme         int
	ticksPerFrame int
	center        bool
	showHelp      bool

	snap      sim.Snapshot
	history   []float64
	historyID string
	events    *eventLog
}

type Option func(*Model)

func WithTitle(title string) Option {
	return func(m *Model) { m.title = title }
}

// WithTicksPerFrame runs several world ticks per rendered frame.
func WithTicksPerFrame(n int) Option {
	return func(m *Model) {
		if n > 0 {
			m.ticksPerFrame = n
		}
	}
}

func WithTheme(name string) Option {
	return func(m *Model) {
		for i, t := range Themes {
			if t.Name == name {
				m.theme = i
			}
		}
	}
}

// NewModel attaches a live view to w. The view registers an observer on the
// world for its event panel.
func NewModel(w *sim.World, opts ...Option) Model {
	m := Model{
		world:         w,
		title:         "newsorbit",
		canvas:        NewCanvas(width, height),
		camera:        NewCamera(w.Params().MaxDistance),
		ticksPerFrame: 1,
		events:        &eventLog{},
		history:       make([]float64, 0, historyCapacity),
	}
	for _, opt := range opts {
		opt(&m)
	}
	w.AddObserver(m.events)
	m.snap = w.Snapshot()
	return m
}

func frame() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return frame() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case TickMsg:
		m.step()
		return m, frame()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ", "space":
		m.world.TogglePause(nil)
	case "tab":
		m.cycleFollow(1)
	case "shift+tab":
		m.cycleFollow(-1)
	case "esc":
		_ = m.world.SetFollowed("")
	case "h":
		m.toggleHover()
	case "c":
		m.center = !m.center
	case "+", "=":
		m.camera.ZoomIn()
	case "-", "_":
		m.camera.ZoomOut()
	case "left":
		m.camera.Rotate(-0.1, 0)
	case "right":
		m.camera.Rotate(0.1, 0)
	case "up":
		m.camera.Rotate(0, 0.1)
	case "down":
		m.camera.Rotate(0, -0.1)
	case "t":
		m.theme = (m.theme + 1) % len(Themes)
	case "?":
		m.showHelp = !m.showHelp
	}
	m.snap = m.world.Snapshot()
	return m, nil
}

// cycleFollow moves the followed body to the next orbiting body in id
// order, wrapping around.
func (m *Model) cycleFollow(dir int) {
	bodies := m.snap.Orbiting()
	if len(bodies) == 0 {
		return
	}
	idx := -1
	for i, b := range bodies {
		if b.ID == m.snap.FollowedID {
			idx = i
		}
	}
	next := 0
	if idx >= 0 {
		next = (idx + dir + len(bodies)) % len(bodies)
	} else if dir < 0 {
		next = len(bodies) - 1
	}
	_ = m.world.SetFollowed(bodies[next].ID)
}

func (m *Model) toggleHover() {
	followed := m.world.FollowedID()
	if followed == "" || m.world.HoveredID() == followed {
		_ = m.world.SetHovered("")
		return
	}
	_ = m.world.SetHovered(followed)
}

// step advances the world and refreshes the followed body's history.
func (m *Model) step() {
	for i := 0; i < m.ticksPerFrame; i++ {
		m.world.Tick()
	}
	m.snap = m.world.Snapshot()

	if m.snap.FollowedID != m.historyID {
		m.history = m.history[:0]
		m.historyID = m.snap.FollowedID
	}
	if b, ok := m.snap.Get(m.snap.FollowedID); ok && !m.snap.Paused {
		m.history = append(m.history, m.snap.DistanceToAnchor(b))
		if len(m.history) > historyCapacity {
			m.history = m.history[1:]
		}
	}
}

func (m Model) View() string {
	theme := Themes[m.theme]

	m.camera.Center = dynamo.Zero
	if a, ok := m.snap.Anchor(); ok {
		m.camera.Center = a.Position
	}
	if b, ok := m.snap.Get(m.snap.FollowedID); ok && m.center {
		m.camera.Center = b.Position
	}
	Render(m.canvas, m.camera, m.snap)
	canvasView := canvasStyle.Render(m.canvas.Render(theme))

	var s strings.Builder
	s.WriteString(headerStyle(theme).Render(strings.ToUpper(m.title)) + "\n")
	if m.snap.Paused {
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	} else {
		s.WriteString(StatusRunning.Render("RUNNING") + "\n\n")
	}

	lines, absorbed := m.events.snapshot()
	s.WriteString(row("Tick", fmt.Sprintf("%d", m.snap.Tick)))
	s.WriteString(row("Bodies", fmt.Sprintf("%d", len(m.snap.Orbiting()))))
	s.WriteString(row("Absorbed", fmt.Sprintf("%d", absorbed)))
	s.WriteString(row("Zoom", fmt.Sprintf("%.1fx", m.camera.Zoom)))
	s.WriteString("\n")

	if b, ok := m.snap.Get(m.snap.FollowedID); ok {
		s.WriteString(headerStyle(theme).Render("FOLLOWING") + "\n")
		name := b.Name
		if name == "" {
			name = b.ID
		}
		s.WriteString(row("Title", Truncate(name, 30)))
		s.WriteString(row("Tier", b.Tier.String()))
		s.WriteString(row("Distance", fmt.Sprintf("%.2f", m.snap.DistanceToAnchor(b))))
		s.WriteString(row("Speed", fmt.Sprintf("%.4f", b.Velocity.Magnitude())))
		if b.IsHovered {
			s.WriteString(row("Hover", "slowed"))
		}
		if len(m.history) > 1 {
			chart := asciigraph.Plot(m.history, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("distance"))
			s.WriteString(graphStyle.Render(chart) + "\n")
		}
	} else {
		s.WriteString(row("Following", "none (tab)"))
	}

	if len(lines) > 0 {
		s.WriteString("\n" + Separator(30) + "\n")
		for _, l := range lines {
			s.WriteString(valueStyle.Render(Truncate(l, 40)) + "\n")
		}
	}

	s.WriteString(helpStyle.Render("SP:Pause TAB:Follow H:Hover\nC:Center T:Theme ?:Help Q:Quit"))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return helpText + "\n" + mainView
	}
	return mainView
}

const helpText = `
  Space        pause / resume
  Tab / S-Tab  follow next / previous body
  Esc          stop following
  H            slow the followed body (hover)
  C            center on the followed body
  + / -        zoom
  Arrows       spin and tilt the view
  T            cycle themes
  Q            quit
`

// Run opens the live view full screen and blocks until the user quits.
func Run(w *sim.World, opts ...Option) error {
	_, err := tea.NewProgram(NewModel(w, opts...), tea.WithAltScreen()).Run()
	return err
}
