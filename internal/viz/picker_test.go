package viz

import (
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/experiment"
)

func pick(t *testing.T, p Picker, msg tea.Msg) (Picker, tea.Cmd) {
	t.Helper()
	next, cmd := p.Update(msg)
	return next.(Picker), cmd
}

func TestPickerListsPresets(t *testing.T) {
	p := NewPicker(experiment.NewRegistry(), Options{})
	if !slices.Equal(p.names, config.ListPresets()) {
		t.Fatalf("names = %v", p.names)
	}
	view := p.View()
	for _, name := range p.names {
		if !strings.Contains(view, name) {
			t.Errorf("menu missing %s", name)
		}
	}
}

func TestPickerOpensAndClosesViewer(t *testing.T) {
	p := NewPicker(experiment.NewRegistry(), Options{})
	p, _ = pick(t, p, key("down"))
	want := p.names[1]

	p, cmd := pick(t, p, key("enter"))
	if !p.active || cmd == nil {
		t.Fatalf("enter did not start the viewer (active=%v)", p.active)
	}
	if !strings.Contains(p.View(), strings.ToUpper(want)) {
		t.Errorf("viewer title should be %s", strings.ToUpper(want))
	}

	p, _ = pick(t, p, TickMsg{})
	if p.viewer.Frame().Tick != 1 {
		t.Errorf("viewer tick = %d, want 1", p.viewer.Frame().Tick)
	}

	p, cmd = pick(t, p, key("esc"))
	if p.active || cmd != nil {
		t.Fatal("esc should return to the menu")
	}

	// the old frame loop is still running, so reopening must not start another
	p, cmd = pick(t, p, key("enter"))
	if !p.active || cmd != nil {
		t.Errorf("reopened viewer started a second frame loop")
	}
}

func TestPickerDropsStaleTick(t *testing.T) {
	p := NewPicker(experiment.NewRegistry(), Options{})
	p, _ = pick(t, p, key("enter"))
	p, _ = pick(t, p, key("esc"))
	p, _ = pick(t, p, TickMsg{})
	if p.pending {
		t.Fatal("stale tick not consumed")
	}
	p, cmd := pick(t, p, key("enter"))
	if cmd == nil {
		t.Error("viewer opened after the stale tick needs its own frame loop")
	}
}

func TestPickerQuit(t *testing.T) {
	p := NewPicker(experiment.NewRegistry(), Options{})
	if _, cmd := pick(t, p, key("q")); !isQuit(cmd) {
		t.Error("q did not quit the menu")
	}
}
