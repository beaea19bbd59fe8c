package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/kinesim/internal/experiment"
	"github.com/san-kum/kinesim/internal/scene"
	"github.com/san-kum/kinesim/internal/vmath"
)

const (
	metadataFile = "metadata.json"
	sceneFile    = "scene.json"
	graphsFile   = "graphs.csv"
)

var ErrMalformed = errors.New("storage: malformed graphs file")

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
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Timestamp time.Time          `json:"timestamp"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Steps     int                `json:"steps"`
	Time      float64            `json:"time"`
	Graphs    []string           `json:"graphs"`
	Metrics   map[string]float64 `json:"metrics"`
	Errors    []string           `json:"errors,omitempty"`
}

// Save writes a run directory holding metadata, the scene at its final
// state and every graph polyline.
func (s *Store) Save(name string, dt, duration float64, sc *scene.Scene, result *experiment.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Name:      name,
		Timestamp: now,
		Dt:        dt,
		Duration:  duration,
		Steps:     result.Steps,
		Time:      result.Time,
		Graphs:    result.Titles,
		Metrics:   result.Metrics,
		Errors:    result.Errors,
	}
	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	if sc != nil {
		if err := scene.SaveFile(filepath.Join(runDir, sceneFile), sc); err != nil {
			return "", err
		}
	}

	if err := writeGraphs(filepath.Join(runDir, graphsFile), result.Graphs); err != nil {
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

func writeGraphs(path string, graphs [][]vmath.Vec2) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"graph", "x", "y"}); err != nil {
		return err
	}
	for gi, pts := range graphs {
		idx := strconv.Itoa(gi)
		for _, p := range pts {
			row := []string{
				idx,
				strconv.FormatFloat(p.X, 'g', -1, 64),
				strconv.FormatFloat(p.Y, 'g', -1, 64),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}

// List returns stored runs, newest first. Directories without readable
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
		if runs[i].Timestamp.Equal(runs[j].Timestamp) {
			return runs[i].ID > runs[j].ID
		}
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
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadScene(runID string) (*scene.Scene, error) {
	return scene.LoadFile(filepath.Join(s.baseDir, runID, sceneFile))
}

// LoadPoints reads back the polylines of every graph in the run.
func (s *Store) LoadPoints(runID string) ([][]vmath.Vec2, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, graphsFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 3

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	var graphs [][]vmath.Vec2
	for i := 1; i < len(records); i++ {
		rec := records[i]
		gi, err := strconv.Atoi(rec[0])
		if err != nil || gi < 0 {
			return nil, fmt.Errorf("%w: line %d", ErrMalformed, i+1)
		}
		x, errX := strconv.ParseFloat(rec[1], 64)
		y, errY := strconv.ParseFloat(rec[2], 64)
		if errX != nil || errY != nil {
			return nil, fmt.Errorf("%w: line %d", ErrMalformed, i+1)
		}
		for len(graphs) <= gi {
			graphs = append(graphs, nil)
		}
		graphs[gi] = append(graphs[gi], vmath.V(x, y))
	}
	return graphs, nil
}

// LoadResult rebuilds the experiment result recorded by Save.
func (s *Store) LoadResult(runID string) (*experiment.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	graphs, err := s.LoadPoints(runID)
	if err != nil {
		return nil, err
	}
	for len(graphs) < len(meta.Graphs) {
		graphs = append(graphs, nil)
	}
	return &experiment.Result{
		Steps:   meta.Steps,
		Time:    meta.Time,
		Titles:  meta.Graphs,
		Graphs:  graphs,
		Metrics: meta.Metrics,
		Errors:  meta.Errors,
	}, nil
}
