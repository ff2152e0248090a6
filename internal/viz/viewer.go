package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/gravsim/internal/dynamo"
)

const (
	defaultWidth    = 60
	defaultHeight   = 22
	historyCapacity = 600
	maxBodyLines    = 12
	statsWidth      = 44
)

// Source is the session the viewer polls. The viewer only reads snapshots
// and calls Tick; it never touches the bodies.
type Source interface {
	Tick() bool
	State() dynamo.FrameState
	Energy() float64
	InBounds() bool
	Err() error
}

type Options struct {
	Title         string
	StepsPerFrame int
	FPS           int
	TrailLen      int
	Theme         string
	ExitOnEnd     bool
}

func (o Options) withDefaults() Options {
	if o.StepsPerFrame <= 0 {
		o.StepsPerFrame = 1
	}
	if o.FPS <= 0 {
		o.FPS = 60
	}
	if o.TrailLen < 0 {
		o.TrailLen = 0
	} else if o.TrailLen == 0 {
		o.TrailLen = 200
	}
	if o.Title == "" {
		o.Title = "gravsim"
	}
	return o
}

type TickMsg time.Time

// Model is the bubbletea model of the live viewer.
type Model struct {
	src      Source
	opts     Options
	proj     Projector
	canvas   *Canvas
	frame    dynamo.FrameState
	trails   [][][]float64
	energy   []float64
	merges   int
	running  bool
	done     bool
	showHelp bool
	theme    Theme
	st       styles
}

// NewModel builds a viewer for src. half is the session's in-bounds
// half-extent; two components select a planar view, three a camera.
func NewModel(src Source, half []float64, opts Options) Model {
	opts = opts.withDefaults()
	theme := GetTheme(opts.Theme)
	m := Model{
		src:     src,
		opts:    opts,
		proj:    projectorFor(half),
		canvas:  NewCanvas(defaultWidth, defaultHeight),
		energy:  make([]float64, 0, historyCapacity),
		running: true,
		theme:   theme,
		st:      stylesFor(theme),
	}
	m.record(src.State())
	return m
}

func projectorFor(half []float64) Projector {
	if len(half) >= 3 {
		return NewCamera(math.Max(half[0], math.Max(half[1], half[2])))
	}
	if len(half) == 2 {
		return NewPlanar(dynamo.Vec2{X: half[0], Y: half[1]})
	}
	return NewPlanar(dynamo.Vec2{X: 1, Y: 1})
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

// Update handles input events and steps the session.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		w, h := msg.Width-statsWidth-6, msg.Height-3
		m.canvas = NewCanvas(max(w, 10), max(h, 5))
	case TickMsg:
		if m.running && !m.done {
			m.advance(m.opts.StepsPerFrame)
			if m.done && m.opts.ExitOnEnd {
				return m, tea.Quit
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.running = !m.running
	case "s":
		if !m.running && !m.done {
			m.advance(1)
		}
	case "t":
		m.theme = NextTheme(m.theme.Name)
		m.st = stylesFor(m.theme)
	case "+", "=":
		m.proj.ZoomIn()
	case "-", "_":
		m.proj.ZoomOut()
	case "?":
		m.showHelp = !m.showHelp
	}
	if cam, ok := m.proj.(*Camera); ok {
		switch msg.String() {
		case "up", "k":
			cam.RotateX(0.1)
		case "down", "j":
			cam.RotateX(-0.1)
		case "left", "h":
			cam.RotateY(0.1)
		case "right", "l":
			cam.RotateY(-0.1)
		case "z":
			cam.RotateZ(0.1)
		case "Z":
			cam.RotateZ(-0.1)
		}
	}
	return m, nil
}

// advance runs up to n ticks, stopping early once the session ends.
func (m *Model) advance(n int) {
	for i := 0; i < n; i++ {
		if !m.src.Tick() {
			m.done = true
			return
		}
		m.record(m.src.State())
	}
}

func (m *Model) record(f dynamo.FrameState) {
	if f.Merged {
		m.merges++
		if f.Absorbed < len(m.trails) {
			m.trails = append(m.trails[:f.Absorbed], m.trails[f.Absorbed+1:]...)
		}
	}
	for len(m.trails) < len(f.Bodies) {
		m.trails = append(m.trails, nil)
	}
	m.trails = m.trails[:len(f.Bodies)]
	if m.opts.TrailLen > 0 {
		for i, b := range f.Bodies {
			t := append(m.trails[i], b.Pos)
			if len(t) > m.opts.TrailLen {
				t = t[len(t)-m.opts.TrailLen:]
			}
			m.trails[i] = t
		}
	}
	m.frame = f

	if e := m.src.Energy(); !math.IsNaN(e) && !math.IsInf(e, 0) {
		m.energy = append(m.energy, e)
		if len(m.energy) > historyCapacity {
			m.energy = m.energy[1:]
		}
	}
}

// Done reports whether the session has stopped ticking.
func (m Model) Done() bool { return m.done }

// Frame returns the last frame the viewer recorded.
func (m Model) Frame() dynamo.FrameState { return m.frame }

// bodyRadius grows with the cube root of mass, in canvas dots.
func bodyRadius(mass float64) int {
	r := int(math.Round(math.Cbrt(mass)))
	return min(max(r, 0), 4)
}

func (m Model) draw() {
	m.canvas.Clear()
	w, h := m.canvas.Dots()
	if cam, ok := m.proj.(*Camera); ok {
		DrawAxes(m.canvas, cam, cam.Extent/4)
	}
	for _, trail := range m.trails {
		for _, p := range trail {
			if x, y, _, ok := m.proj.Project(p, w, h); ok {
				m.canvas.Set(x, y)
			}
		}
	}
	for _, b := range m.frame.Bodies {
		if x, y, _, ok := m.proj.Project(b.Pos, w, h); ok {
			m.canvas.FillCircle(x, y, bodyRadius(b.Mass))
		}
	}
}

func (m Model) status() string {
	switch {
	case m.done && m.src.Err() != nil:
		return m.st.ended.Render("STOPPED: " + m.src.Err().Error())
	case m.done && !m.src.InBounds():
		return m.st.ended.Render("ENDED: all bodies out of bounds")
	case m.done:
		return m.st.ended.Render("ENDED")
	case !m.running:
		return m.st.paused.Render("PAUSED")
	}
	return m.st.running.Render("RUNNING")
}

// View renders the canvas beside the stats panel.
func (m Model) View() string {
	m.draw()
	canvasView := m.st.canvas.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(m.st.header.Render(strings.ToUpper(m.opts.Title)) + "\n")
	s.WriteString(m.status() + "\n\n")
	if len(m.energy) > 1 {
		chart := asciigraph.Plot(m.energy, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(m.st.graph.Render(chart) + "\n")
	}
	s.WriteString(m.st.value.Render(fmt.Sprintf("time : %5.1f", m.frame.Time)) + "\n")
	s.WriteString(m.st.label.Render("tick") + m.st.value.Render(fmt.Sprintf("%d", m.frame.Tick)) + "\n")
	s.WriteString(m.st.label.Render("bodies") + m.st.value.Render(fmt.Sprintf("%d", len(m.frame.Bodies))) + "\n")
	s.WriteString(m.st.label.Render("merges") + m.st.value.Render(fmt.Sprintf("%d", m.merges)) + "\n")
	if m.frame.Merged {
		s.WriteString(m.st.ended.Render(fmt.Sprintf("MERGE: body %d absorbed", m.frame.Absorbed)) + "\n")
	}
	s.WriteString("\n")
	for i, b := range m.frame.Bodies {
		if i == maxBodyLines {
			s.WriteString(m.st.muted.Render(fmt.Sprintf("   ... %d more", len(m.frame.Bodies)-i)) + "\n")
			break
		}
		s.WriteString(m.st.body.Render(bodyLine(i, b)) + "\n")
	}
	s.WriteString(m.st.help.Render("SP:Pause S:Step T:Theme +/-:Zoom\n?:Help Q:Quit"))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, m.st.stats.Render(s.String()))
	if m.showHelp {
		return m.helpView() + "\n" + mainView
	}
	return mainView
}

func bodyLine(i int, b dynamo.BodyState) string {
	if len(b.Pos) >= 3 {
		return fmt.Sprintf("%2d > m:%4.1f r:(%5.1f,%5.1f,%5.1f)", i, b.Mass, b.Pos[0], b.Pos[1], b.Pos[2])
	}
	if len(b.Pos) == 2 {
		return fmt.Sprintf("%2d > m:%4.1f r:(%5.1f,%5.1f)", i, b.Mass, b.Pos[0], b.Pos[1])
	}
	return fmt.Sprintf("%2d > m:%4.1f", i, b.Mass)
}

func (m Model) helpView() string {
	lines := []string{
		"Space      pause / resume",
		"S          single tick while paused",
		"T          cycle themes",
		"+ / -      zoom",
		"Q, Esc     quit",
	}
	if _, ok := m.proj.(*Camera); ok {
		lines = append(lines, "Arrows     rotate camera", "Z / z      roll camera")
	}
	return m.st.muted.Render(strings.Join(lines, "\n"))
}

// Run shows src full screen until the user quits. With ExitOnEnd set the
// viewer also closes when the session stops ticking.
func Run(src Source, half []float64, opts Options) (Model, error) {
	final, err := tea.NewProgram(NewModel(src, half, opts), tea.WithAltScreen()).Run()
	if err != nil {
		return Model{}, err
	}
	return final.(Model), nil
}
