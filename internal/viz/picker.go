package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/experiment"
)

// Picker lists the built-in presets and opens the viewer on the chosen one.
// Esc in the viewer returns to the list.
type Picker struct {
	reg     *experiment.Registry
	opts    Options
	names   []string
	cursor  int
	viewer  Model
	active  bool
	pending bool
	err     error
	size    *tea.WindowSizeMsg
	st      styles
}

func NewPicker(reg *experiment.Registry, opts Options) Picker {
	return Picker{
		reg:   reg,
		opts:  opts,
		names: config.ListPresets(),
		st:    stylesFor(GetTheme(opts.Theme)),
	}
}

func (p Picker) Init() tea.Cmd { return nil }

func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.size = &msg
	case TickMsg:
		if !p.active {
			// a tick from a viewer that has been closed
			p.pending = false
			return p, nil
		}
	case tea.KeyMsg:
		if !p.active {
			return p.menuKey(msg)
		}
		if msg.String() == "esc" {
			p.active, p.pending = false, true
			return p, nil
		}
	}
	if !p.active {
		return p, nil
	}
	next, cmd := p.viewer.Update(msg)
	p.viewer = next.(Model)
	return p, cmd
}

func (p Picker) menuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return p, tea.Quit
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.names)-1 {
			p.cursor++
		}
	case "enter", " ":
		return p.start(p.names[p.cursor])
	}
	return p, nil
}

func (p Picker) start(name string) (tea.Model, tea.Cmd) {
	cfg := config.GetPreset(name)
	if cfg == nil {
		p.err = fmt.Errorf("preset not found: %s", name)
		return p, nil
	}
	exp, err := experiment.New(cfg, p.reg)
	if err != nil {
		p.err = err
		return p, nil
	}
	opts := p.opts
	opts.Title = name
	opts.ExitOnEnd = false
	p.viewer = NewModel(exp.Runner(), cfg.HalfExtent(), opts)
	if p.size != nil {
		next, _ := p.viewer.Update(*p.size)
		p.viewer = next.(Model)
	}
	p.active, p.err = true, nil
	if p.pending {
		// the closed viewer's tick is still in flight and will drive this one
		p.pending = false
		return p, nil
	}
	return p, p.viewer.Init()
}

func (p Picker) View() string {
	if p.active {
		return p.viewer.View()
	}
	var b strings.Builder
	b.WriteString("\n\n    " + p.st.header.Render("GRAVSIM") + "\n")
	b.WriteString("    " + p.st.muted.Render("gravitational n-body presets") + "\n\n")
	for i, name := range p.names {
		line := fmt.Sprintf("%-10s %s", name, describe(config.Presets[name]))
		if i == p.cursor {
			b.WriteString("    " + p.st.cursor.Render("▸ "+line) + "\n")
		} else {
			b.WriteString("      " + p.st.muted.Render(line) + "\n")
		}
	}
	if p.err != nil {
		b.WriteString("\n    " + p.st.ended.Render(p.err.Error()) + "\n")
	}
	b.WriteString("\n    " + p.st.help.Render("j/k navigate  enter select  esc back  q quit") + "\n")
	return b.String()
}

func describe(c *config.Config) string {
	if c == nil {
		return ""
	}
	return fmt.Sprintf("%dD  %d bodies  %s  dt=%g", c.Dimension, len(c.Bodies), c.Integrator, c.Dt)
}

// RunPicker shows the preset list full screen.
func RunPicker(reg *experiment.Registry, opts Options) error {
	_, err := tea.NewProgram(NewPicker(reg, opts), tea.WithAltScreen()).Run()
	return err
}
