package viz

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	. "github.com/onsi/gomega"

	"github.com/san-kum/newsorbit/internal/dynamo"
	"github.com/san-kum/newsorbit/internal/sim"
)

func testWorld(t *testing.T) *sim.World {
	t.Helper()
	w, err := sim.New(dynamo.DefaultParams())
	if err != nil {
		t.Fatalf("new world: %v", err)
	}
	if err := w.Add(dynamo.NewAnchor("anchor", "Anchor", dynamo.DefaultAnchorMass, dynamo.DefaultAnchorRadius)); err != nil {
		t.Fatal(err)
	}
	for i, id := range []string{"a", "b", "c"} {
		b := &dynamo.Body{
			ID:       id,
			Name:     "story " + id,
			Position: dynamo.Vec3(float64(10+10*i), 0, 0),
			Velocity: dynamo.Vec3(0, 0, 0.01),
			Mass:     1000,
			Radius:   0.5,
			Tier:     dynamo.Tier(i),
		}
		if err := w.Add(b); err != nil {
			t.Fatal(err)
		}
	}
	return w
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func press(m Model, k tea.KeyMsg) Model {
	next, _ := m.Update(k)
	return next.(Model)
}

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(0, 0, InkClose)
	c.Set(1, 3, InkClose)
	if c.Grid[0][0] != rune(blank|0x1|0x80) {
		t.Errorf("cell = %U", c.Grid[0][0])
	}

	c.Set(100, 100, InkClose)
	c.Set(-1, 0, InkClose)

	c.Unset(0, 0)
	c.Unset(1, 3)
	if c.Grid[0][0] != blank || c.Inks[0][0] != InkNone {
		t.Error("unset did not clear the cell")
	}
}

func TestCanvasTrailKeepsBodyInk(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Set(0, 0, InkFar)
	c.Set(1, 1, InkTrail)
	if c.Inks[0][0] != InkFar {
		t.Errorf("ink = %d, want InkFar", c.Inks[0][0])
	}
	c.Set(2, 0, InkTrail)
	c.Set(2, 1, InkMedium)
	if c.Inks[0][1] != InkMedium {
		t.Errorf("ink = %d, want InkMedium", c.Inks[0][1])
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(3, 2)
	lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines", len(lines))
	}
	for _, l := range lines {
		if l != strings.Repeat(string(rune(blank)), 3) {
			t.Errorf("line %q not blank", l)
		}
	}
}

func TestCameraProject(t *testing.T) {
	g := NewWithT(t)
	cam := NewCamera(40)
	cam.Tilt = 0

	x, y, _, ok := cam.Project(dynamo.Zero, 80, 80)
	g.Expect(ok).To(BeTrue())
	g.Expect([]int{x, y}).To(Equal([]int{40, 40}))

	x, y, _, _ = cam.Project(dynamo.Vec3(10, 0, 0), 80, 80)
	g.Expect([]int{x, y}).To(Equal([]int{50, 40}))

	x, y, _, _ = cam.Project(dynamo.Vec3(0, 0, 10), 80, 80)
	g.Expect([]int{x, y}).To(Equal([]int{40, 50}))

	cam.Zoom = 2
	x, _, _, _ = cam.Project(dynamo.Vec3(10, 0, 0), 80, 80)
	g.Expect(x).To(Equal(60))

	_, _, _, ok = cam.Project(dynamo.Vec3(100, 0, 0), 80, 80)
	g.Expect(ok).To(BeFalse())
}

func TestCameraLimits(t *testing.T) {
	cam := NewCamera(40)
	for i := 0; i < 100; i++ {
		cam.ZoomIn()
		cam.Rotate(0, 1)
	}
	if cam.Zoom != 10 {
		t.Errorf("zoom = %v", cam.Zoom)
	}
	if cam.Tilt > 1.5708 {
		t.Errorf("tilt = %v", cam.Tilt)
	}
}

func TestFrameDrawsAnchor(t *testing.T) {
	w := testWorld(t)
	out := Frame(w.Snapshot(), 40, 20, 40)
	lines := strings.Split(out, "\n")
	if got := []rune(lines[10])[20]; got == blank {
		t.Error("anchor cell is blank")
	}
}

func TestModelPauseAndFollow(t *testing.T) {
	g := NewWithT(t)
	w := testWorld(t)
	m := NewModel(w)

	m = press(m, tea.KeyMsg{Type: tea.KeySpace})
	g.Expect(w.Paused()).To(BeTrue())
	g.Expect(m.View()).To(ContainSubstring("PAUSED"))
	m = press(m, runes(" "))
	g.Expect(w.Paused()).To(BeFalse())

	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	g.Expect(w.FollowedID()).To(Equal("a"))
	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	g.Expect(w.FollowedID()).To(Equal("b"))
	m = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	g.Expect(w.FollowedID()).To(Equal("c"))

	m = press(m, runes("h"))
	g.Expect(w.HoveredID()).To(Equal("c"))
	m = press(m, runes("h"))
	g.Expect(w.HoveredID()).To(BeEmpty())

	m = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	g.Expect(w.FollowedID()).To(BeEmpty())
	m = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	g.Expect(w.FollowedID()).To(Equal("c"))
}

func TestModelTick(t *testing.T) {
	g := NewWithT(t)
	w := testWorld(t)
	m := NewModel(w, WithTicksPerFrame(3))
	g.Expect(w.SetFollowed("a")).To(Succeed())

	next, cmd := m.Update(TickMsg{})
	m = next.(Model)
	g.Expect(cmd).NotTo(BeNil())
	g.Expect(w.TickCount()).To(Equal(int64(3)))
	g.Expect(m.history).To(HaveLen(1))

	next, _ = m.Update(TickMsg{})
	m = next.(Model)
	g.Expect(m.history).To(HaveLen(2))

	g.Expect(w.SetFollowed("b")).To(Succeed())
	next, _ = m.Update(TickMsg{})
	m = next.(Model)
	g.Expect(m.history).To(HaveLen(1))
	g.Expect(m.View()).To(ContainSubstring("story b"))
}

func TestModelEventsAndQuit(t *testing.T) {
	g := NewWithT(t)
	w := testWorld(t)
	m := NewModel(w, WithTheme("sunset"))
	g.Expect(Themes[m.theme].Name).To(Equal("sunset"))

	w.Remove("b")
	lines, _ := m.events.snapshot()
	g.Expect(lines).To(ContainElement(ContainSubstring("- b")))

	m = press(m, runes("t"))
	g.Expect(m.theme).NotTo(Equal(2))

	_, cmd := m.Update(runes("q"))
	g.Expect(cmd).NotTo(BeNil())
	g.Expect(cmd()).To(Equal(tea.Quit()))
}

func TestMenuStartsLiveView(t *testing.T) {
	g := NewWithT(t)
	var built []string
	build := func(name string) (*sim.World, error) {
		built = append(built, name)
		if name == "broken" {
			return nil, errors.New("no anchor")
		}
		return testWorld(t), nil
	}
	m := NewMenu([]string{"broken", "calm"}, map[string]string{"calm": "slow orbits"}, build)
	g.Expect(m.View()).To(ContainSubstring("slow orbits"))

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Menu)
	g.Expect(m.state).To(Equal(stateMenu))
	g.Expect(m.View()).To(ContainSubstring("no anchor"))

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, cmd := next.(Menu).Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Menu)
	g.Expect(cmd).NotTo(BeNil())
	g.Expect(m.state).To(Equal(stateSim))
	g.Expect(built).To(Equal([]string{"broken", "calm"}))
	g.Expect(m.View()).To(ContainSubstring("CALM"))

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	g.Expect(next.(Menu).state).To(Equal(stateMenu))
}
