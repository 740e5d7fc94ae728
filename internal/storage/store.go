package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/cannon/internal/dynamo"
	"github.com/san-kum/cannon/internal/sim"
)

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "trajectory.csv"
)

var trajectoryHeader = []string{"tick", "time", "handle", "x", "y", "vx", "vy", "ax", "ay", "collided"}

// Store keeps run reports under baseDir, one directory per run.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunInfo describes the setup that produced a result.
type RunInfo struct {
	Preset       string
	Fingerprint  string
	Dt           float64
	Duration     float64
	G            float64
	Response     string
	PlanetMass   uint64
	PlanetRadius float64
}

type RunMetadata struct {
	ID           string             `json:"id"`
	Preset       string             `json:"preset,omitempty"`
	Fingerprint  string             `json:"fingerprint"`
	Timestamp    time.Time          `json:"timestamp"`
	Dt           float64            `json:"dt"`
	Duration     float64            `json:"duration"`
	G            float64            `json:"g"`
	Response     string             `json:"response"`
	PlanetMass   uint64             `json:"planet_mass"`
	PlanetRadius float64            `json:"planet_radius"`
	Ticks        int                `json:"ticks"`
	Projectiles  int                `json:"projectiles"`
	Collisions   int                `json:"collisions"`
	Metrics      map[string]float64 `json:"metrics"`
}

func (s *Store) Save(info RunInfo, result *sim.Result) (string, error) {
	runID := uuid.NewString()
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:           runID,
		Preset:       info.Preset,
		Fingerprint:  info.Fingerprint,
		Timestamp:    time.Now().UTC(),
		Dt:           info.Dt,
		Duration:     info.Duration,
		G:            info.G,
		Response:     info.Response,
		PlanetMass:   info.PlanetMass,
		PlanetRadius: info.PlanetRadius,
		Ticks:        result.Ticks,
		Projectiles:  result.Projectiles,
		Collisions:   result.Collisions,
		Metrics:      result.Metrics,
	}

	if err := writeMetadata(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeTrajectory(filepath.Join(runDir, trajectoryFile), result.Samples); err != nil {
		return "", err
	}
	return runID, nil
}

func writeMetadata(path string, meta RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func writeTrajectory(path string, samples []dynamo.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := WriteSamples(f, samples); err != nil {
		return err
	}
	return f.Close()
}

// WriteSamples writes samples as CSV with a header row.
func WriteSamples(out io.Writer, samples []dynamo.Sample) error {
	w := csv.NewWriter(out)
	if err := w.Write(trajectoryHeader); err != nil {
		return err
	}

	for _, smp := range samples {
		row := []string{
			strconv.Itoa(smp.Tick),
			formatFloat(smp.Time),
			strconv.Itoa(smp.Handle),
			formatFloat(smp.Pos.X),
			formatFloat(smp.Pos.Y),
			formatFloat(smp.Vel.X),
			formatFloat(smp.Vel.Y),
			formatFloat(smp.Acc.X),
			formatFloat(smp.Acc.Y),
			strconv.FormatBool(smp.Collided),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// List returns every readable run, oldest first. Directories without valid
// metadata are skipped.
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
		return runs[i].Timestamp.Before(runs[j].Timestamp)
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

func (s *Store) LoadSamples(runID string) ([]dynamo.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(trajectoryHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	if len(records) < 2 {
		return []dynamo.Sample{}, nil
	}

	samples := make([]dynamo.Sample, 0, len(records)-1)
	for i, record := range records[1:] {
		smp, err := parseSample(record)
		if err != nil {
			return nil, fmt.Errorf("run %s row %d: %w", runID, i+1, err)
		}
		samples = append(samples, smp)
	}
	return samples, nil
}

func parseSample(record []string) (dynamo.Sample, error) {
	var smp dynamo.Sample
	var err error

	if smp.Tick, err = strconv.Atoi(record[0]); err != nil {
		return smp, err
	}
	if smp.Handle, err = strconv.Atoi(record[2]); err != nil {
		return smp, err
	}
	if smp.Collided, err = strconv.ParseBool(record[9]); err != nil {
		return smp, err
	}

	floats := []*float64{
		&smp.Time, nil, &smp.Pos.X, &smp.Pos.Y,
		&smp.Vel.X, &smp.Vel.Y, &smp.Acc.X, &smp.Acc.Y,
	}
	for i, dst := range floats {
		if dst == nil {
			continue
		}
		if *dst, err = strconv.ParseFloat(record[i+1], 64); err != nil {
			return smp, err
		}
	}
	return smp, nil
}
