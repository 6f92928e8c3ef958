package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/newsorbit/internal/config"
	"github.com/san-kum/newsorbit/internal/dynamo"
	"github.com/san-kum/newsorbit/internal/experiment"
)

const (
	metadataFile = "metadata.json"
	tracksFile   = "tracks.csv"
)

var tracksHeader = []string{"tick", "body_id", "distance", "speed", "x", "y", "z"}

// Store keeps finished runs, one directory each.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Timestamp   time.Time           `json:"timestamp"`
	Seed        int64               `json:"seed"`
	Ticks       int                 `json:"ticks"`
	SampleEvery int                 `json:"sample_every"`
	Bodies      int                 `json:"bodies"`
	Absorbed    int                 `json:"absorbed"`
	Anchor      config.AnchorConfig `json:"anchor"`
	Params      dynamo.Params       `json:"params"`
	Metrics     map[string]float64  `json:"metrics"`
}

// Save writes metadata.json and tracks.csv for a finished run and returns
// the new run id.
func (s *Store) Save(name string, cfg *config.Config, result *experiment.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%s_%s", name, now.Format("20060102-150405"), uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Name:        name,
		Timestamp:   now,
		Seed:        cfg.Seed,
		Ticks:       result.Ticks,
		SampleEvery: result.SampleEvery,
		Bodies:      len(result.Final.Bodies),
		Absorbed:    result.Absorbed,
		Anchor:      cfg.Anchor,
		Params:      cfg.Params(),
		Metrics:     result.Metrics,
	}
	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeTracks(filepath.Join(runDir, tracksFile), result.Samples); err != nil {
		return "", err
	}
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeTracks(path string, samples []experiment.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(tracksHeader); err != nil {
		return err
	}
	for _, smp := range samples {
		row := []string{
			strconv.FormatInt(smp.Tick, 10),
			smp.BodyID,
			formatFloat(smp.Distance),
			formatFloat(smp.Speed),
			formatFloat(smp.Position.X),
			formatFloat(smp.Position.Y),
			formatFloat(smp.Position.Z),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// List returns the metadata of every stored run, newest first. Directories
// without readable metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadTracks reads the samples of a stored run in file order.
func (s *Store) LoadTracks(runID string) ([]experiment.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, tracksFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(tracksHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	if len(records) < 2 {
		return []experiment.Sample{}, nil
	}

	samples := make([]experiment.Sample, 0, len(records)-1)
	for i, rec := range records[1:] {
		smp, err := parseSample(rec)
		if err != nil {
			return nil, fmt.Errorf("run %s: line %d: %w", runID, i+2, err)
		}
		samples = append(samples, smp)
	}
	return samples, nil
}

func parseSample(rec []string) (experiment.Sample, error) {
	tick, err := strconv.ParseInt(rec[0], 10, 64)
	if err != nil {
		return experiment.Sample{}, err
	}
	var vals [5]float64
	for i := range vals {
		vals[i], err = strconv.ParseFloat(rec[i+2], 64)
		if err != nil {
			return experiment.Sample{}, err
		}
	}
	return experiment.Sample{
		Tick:     tick,
		BodyID:   rec[1],
		Distance: vals[0],
		Speed:    vals[1],
		Position: dynamo.Vec3(vals[2], vals[3], vals[4]),
	}, nil
}

// Result rebuilds enough of an experiment result from disk for analysis and
// plotting.
func (s *Store) Result(runID string) (*RunMetadata, *experiment.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	samples, err := s.LoadTracks(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, &experiment.Result{
		Ticks:       meta.Ticks,
		SampleEvery: meta.SampleEvery,
		Samples:     samples,
		Metrics:     meta.Metrics,
		Absorbed:    meta.Absorbed,
	}, nil
}
