package automation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/newsorbit/internal/config"
	"github.com/san-kum/newsorbit/internal/experiment"
)

const scenarioYAML = `
name: hover check
description: same world with and without hover
steps:
  - preset: calm
    ticks: 40
    seed: 7
    params:
      bodies: 3
    follow: syn-000
    hover: true
    save_as: hovered
  - preset: calm
    ticks: 40
    seed: 7
    params:
      bodies: 3
      physics.max_speed: 0.03
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	g := NewWithT(t)
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(sc.Name).To(Equal("hover check"))
	g.Expect(sc.Steps).To(HaveLen(2))
	g.Expect(sc.Steps[1].Params).To(HaveKeyWithValue("physics.max_speed", 0.03))

	_, err = LoadScenario(writeScenario(t, "name: empty\n"))
	g.Expect(errors.Is(err, config.ErrInvalid)).To(BeTrue())

	_, err = LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	g.Expect(err).To(HaveOccurred())
}

func TestStepConfig(t *testing.T) {
	g := NewWithT(t)
	cfg, err := Step{Preset: "ghosts", Ticks: 10, Params: map[string]float64{"anchor.mass": 1e6}}.Config()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(cfg.Physics.Collisions).To(BeFalse())
	g.Expect(cfg.Ticks).To(Equal(10))
	g.Expect(cfg.Anchor.Mass).To(Equal(1e6))

	_, err = Step{Preset: "nope"}.Config()
	g.Expect(errors.Is(err, config.ErrInvalid)).To(BeTrue())

	_, err = Step{Params: map[string]float64{"physics.max_speed": -1}}.Config()
	g.Expect(errors.Is(err, config.ErrInvalid)).To(BeTrue())
}

func TestRunScenario(t *testing.T) {
	g := NewWithT(t)
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	g.Expect(err).NotTo(HaveOccurred())

	var saved []string
	save := func(name string, cfg *config.Config, res *experiment.Result) (string, error) {
		saved = append(saved, name)
		return name + "_1", nil
	}
	results, err := RunScenario(context.Background(), sc, nil, save)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(results).To(HaveLen(2))
	g.Expect(saved).To(Equal([]string{"hovered"}))
	g.Expect(results[0].Final.HoveredID).To(Equal("syn-000"))
	g.Expect(results[0].Ticks).To(Equal(40))
}

func TestRunScenarioStopsOnError(t *testing.T) {
	g := NewWithT(t)
	sc := &Scenario{Steps: []Step{
		{Ticks: 5, Params: map[string]float64{"bodies": 2}},
		{Ticks: 5, Follow: "no-such-body"},
	}}
	results, err := RunScenario(context.Background(), sc, nil, nil)
	g.Expect(err).To(MatchError(ContainSubstring("step 2 follow")))
	g.Expect(results).To(HaveLen(1))
}
