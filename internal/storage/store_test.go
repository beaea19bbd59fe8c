package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/kinesim/internal/config"
	"github.com/san-kum/kinesim/internal/experiment"
	"github.com/san-kum/kinesim/internal/physics"
	"github.com/san-kum/kinesim/internal/vmath"
)

func runPreset(t *testing.T, name string) (*experiment.Experiment, *experiment.Result) {
	t.Helper()
	exp, err := experiment.New(config.GetPreset(name), nil)
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	res, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	return exp, res
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	exp, result := runPreset(t, "projectile")
	runID, err := st.Save("projectile", 0.01, 3, exp.Scene(), result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.Name != "projectile" {
		t.Errorf("expected name 'projectile', got '%s'", meta.Name)
	}
	if meta.Steps != result.Steps {
		t.Errorf("expected %d steps, got %d", result.Steps, meta.Steps)
	}
	if meta.Metrics["ball.max_height"] != result.Metrics["ball.max_height"] {
		t.Errorf("metric mismatch: %v", meta.Metrics)
	}
	if len(meta.Graphs) != len(result.Titles) {
		t.Errorf("expected %d graph titles, got %d", len(result.Titles), len(meta.Graphs))
	}

	graphs, err := st.LoadPoints(runID)
	if err != nil {
		t.Fatalf("load points failed: %v", err)
	}
	if len(graphs) != len(result.Graphs) {
		t.Fatalf("expected %d graphs, got %d", len(result.Graphs), len(graphs))
	}
	for i := range graphs {
		if len(graphs[i]) != len(result.Graphs[i]) {
			t.Errorf("graph %d: expected %d points, got %d", i, len(result.Graphs[i]), len(graphs[i]))
			continue
		}
		for j, p := range graphs[i] {
			if p != result.Graphs[i][j] {
				t.Errorf("graph %d point %d: %v != %v", i, j, p, result.Graphs[i][j])
				break
			}
		}
	}

	loaded, err := st.LoadResult(runID)
	if err != nil {
		t.Fatalf("load result failed: %v", err)
	}
	if loaded.Steps != result.Steps || len(loaded.Graphs) != len(result.Graphs) || loaded.Titles[0] != result.Titles[0] {
		t.Errorf("loaded result = %+v", loaded)
	}

	sc, err := st.LoadScene(runID)
	if err != nil {
		t.Fatalf("load scene failed: %v", err)
	}
	ball, err := sc.Get("ball")
	if err != nil {
		t.Fatal(err)
	}
	v, _ := physics.Lookup[*physics.Velocity](ball, physics.KindVelocity)
	if v.Value() != vmath.V(10, 14) {
		t.Errorf("restored velocity = %v, want baseline (10,14)", v.Value())
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list on missing dir failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	_, result := runPreset(t, "uniform")
	first, err := st.Save("a", 0.05, 5, nil, result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	second, err := st.Save("b", 0.05, 5, nil, result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := os.Mkdir(filepath.Join(tmpDir, "junk"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != second || runs[1].ID != first {
		t.Errorf("expected newest first, got %s, %s", runs[0].ID, runs[1].ID)
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	exp, result := runPreset(t, "freefall")
	runID, err := st.Save("freefall", 0.01, 2, exp.Scene(), result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	for _, name := range []string{metadataFile, sceneFile, graphsFile} {
		if _, err := os.Stat(filepath.Join(tmpDir, runID, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}

func TestLoadPoints_Malformed(t *testing.T) {
	tmpDir := t.TempDir()
	runDir := filepath.Join(tmpDir, "bad")
	if err := os.MkdirAll(runDir, 0755); err != nil {
		t.Fatal(err)
	}
	data := "graph,x,y\n0,1,2\nzero,1,2\n"
	if err := os.WriteFile(filepath.Join(runDir, graphsFile), []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := New(tmpDir).LoadPoints("bad"); !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed, got %v", err)
	}
}
