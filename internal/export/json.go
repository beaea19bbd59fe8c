package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/kinesim/internal/experiment"
	"github.com/san-kum/kinesim/internal/physics"
	"github.com/san-kum/kinesim/internal/scene"
	"github.com/san-kum/kinesim/internal/vmath"
)

type GraphData struct {
	Title  string       `json:"title"`
	Points []vmath.Vec2 `json:"points"`
}

type ExportData struct {
	Name     string                 `json:"name"`
	Dt       float64                `json:"dt"`
	Duration float64                `json:"duration"`
	Steps    int                    `json:"steps"`
	Time     float64                `json:"time"`
	Objects  []physics.ObjectRecord `json:"objects,omitempty"`
	Graphs   []GraphData            `json:"graphs"`
	Metrics  map[string]float64     `json:"metrics"`
	Errors   []string               `json:"errors,omitempty"`
}

func NewExportData(name string, dt, duration float64, sc *scene.Scene, result *experiment.Result) (ExportData, error) {
	data := ExportData{
		Name:     name,
		Dt:       dt,
		Duration: duration,
		Steps:    result.Steps,
		Time:     result.Time,
		Graphs:   make([]GraphData, len(result.Graphs)),
		Metrics:  result.Metrics,
		Errors:   result.Errors,
	}
	for i, pts := range result.Graphs {
		data.Graphs[i].Points = pts
		if i < len(result.Titles) {
			data.Graphs[i].Title = result.Titles[i]
		}
	}
	if sc != nil {
		f, err := sc.File()
		if err != nil {
			return ExportData{}, err
		}
		data.Objects = f.Objects
	}
	return data, nil
}

func WriteJSON(w io.Writer, data ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ExportJSON writes to path, or to stdout when path is "-".
func ExportJSON(path string, data ExportData) error {
	if path == "-" {
		return WriteJSON(os.Stdout, data)
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, data)
}
