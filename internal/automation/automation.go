package automation

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/newsorbit/internal/config"
	"github.com/san-kum/newsorbit/internal/experiment"
	"github.com/san-kum/newsorbit/internal/ingest"
)

// Scenario defines a scripted sequence of runs.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step is one run in a scenario. It starts from a preset, applies Params by
// dotted config key, then runs for Ticks.
type Step struct {
	Preset   string             `yaml:"preset"`
	Seed     int64              `yaml:"seed"`
	Ticks    int                `yaml:"ticks"`
	Articles string             `yaml:"articles"`
	Params   map[string]float64 `yaml:"params"`
	Follow   string             `yaml:"follow"`
	Hover    bool               `yaml:"hover"`
	SaveAs   string             `yaml:"save_as"`
}

// Saver stores a finished step under a name.
type Saver func(name string, cfg *config.Config, result *experiment.Result) (string, error)

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("%w: scenario %s has no steps", config.ErrInvalid, path)
	}

	return &scenario, nil
}

// Config resolves the configuration for a step.
func (s Step) Config() (*config.Config, error) {
	name := s.Preset
	if name == "" {
		name = "default"
	}
	cfg := config.GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("%w: unknown preset %s", config.ErrInvalid, name)
	}
	if s.Seed != 0 {
		cfg.Seed = s.Seed
	}
	if s.Ticks > 0 {
		cfg.Ticks = s.Ticks
	}
	if s.Articles != "" {
		cfg.Articles = s.Articles
	}
	for k, v := range s.Params {
		if err := cfg.Set(k, v); err != nil {
			return nil, err
		}
	}
	return cfg, cfg.Validate()
}

// RunScenario executes all steps in order. A step with SaveAs is handed to
// save when save is non-nil. Results of completed steps are returned even
// when a later step fails.
func RunScenario(ctx context.Context, scenario *Scenario, log *slog.Logger, save Saver) ([]*experiment.Result, error) {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	results := make([]*experiment.Result, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		log.Info("running step", "step", i+1, "of", len(scenario.Steps), "preset", step.Preset)

		cfg, err := step.Config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		var articles []ingest.Article
		if cfg.Articles != "" {
			if articles, err = ingest.LoadFile(cfg.Articles); err != nil {
				return results, fmt.Errorf("step %d: %w", i+1, err)
			}
		}

		exp := experiment.New(cfg, experiment.WithLogger(log))
		if err := exp.Setup(articles); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}
		if step.Follow != "" {
			w := exp.World()
			if err := w.SetFollowed(step.Follow); err != nil {
				return results, fmt.Errorf("step %d follow: %w", i+1, err)
			}
			if step.Hover {
				_ = w.SetHovered(step.Follow)
			}
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}
		results = append(results, result)

		if step.SaveAs != "" && save != nil {
			id, err := save(step.SaveAs, cfg, result)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
			log.Info("step saved", "step", i+1, "run", id)
		}
	}

	return results, nil
}
