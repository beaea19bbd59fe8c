package config

import (
	"math"
	"sort"

	"github.com/san-kum/kinesim/internal/vmath"
)

var Presets = map[string]*Config{
	"freefall": {
		Dt: 0.01, Duration: 2.0, FPS: DefaultFPS, ValidateState: true, LogLevel: DefaultLogLevel,
		Objects: []ObjectConfig{
			{Name: "ball", Position: vmath.V(0, 20), Size: vmath.V(1, 1), Acceleration: vmath.V(0, -9.8), Mass: 1},
		},
		Graphs: []GraphConfig{
			{X: "Time", XTarget: "Simulator", Y: "Position (Y)", YTarget: "ball", PointSize: DefaultPointSize},
			{X: "Time", XTarget: "Simulator", Y: "Velocity (Y)", YTarget: "ball", PointSize: DefaultPointSize},
		},
	},
	"projectile": {
		Dt: 0.01, Duration: 3.0, FPS: DefaultFPS, ValidateState: true, LogLevel: DefaultLogLevel,
		Objects: []ObjectConfig{
			{Name: "ball", Size: vmath.V(0.5, 0.5), Velocity: vmath.V(10, 14), Acceleration: vmath.V(0, -9.8), Mass: 0.5},
		},
		Graphs: []GraphConfig{
			{X: "Position (X)", XTarget: "ball", Y: "Position (Y)", YTarget: "ball", PointSize: DefaultPointSize},
			{X: "Time", XTarget: "Simulator", Y: "Velocity (modulus)", YTarget: "ball", PointSize: DefaultPointSize},
		},
	},
	"uniform": {
		Dt: 0.05, Duration: 5.0, FPS: DefaultFPS, ValidateState: true, LogLevel: DefaultLogLevel,
		Objects: []ObjectConfig{
			{Name: "cart", Size: vmath.V(2, 1), Velocity: vmath.V(2, 0), Mass: 3},
		},
		Graphs: []GraphConfig{
			{X: "Time", XTarget: "Simulator", Y: "Displacement (X)", YTarget: "cart", PointSize: DefaultPointSize},
		},
	},
	"circular": {
		Dt: 0.001, Duration: 2 * math.Pi, FPS: DefaultFPS, ValidateState: true, LogLevel: DefaultLogLevel,
		Objects: []ObjectConfig{
			{
				Name: "satellite", Position: vmath.V(5, 0), Size: vmath.V(1, 1), Velocity: vmath.V(0, 5), Mass: 1,
				Centripetal: &CentripetalConfig{Center: vmath.Zero, Modulus: 5},
			},
		},
		Graphs: []GraphConfig{
			{X: "Position (X)", XTarget: "satellite", Y: "Position (Y)", YTarget: "satellite", PointSize: DefaultPointSize},
			{X: "Time", XTarget: "Simulator", Y: "Acceleration (modulus)", YTarget: "satellite", PointSize: DefaultPointSize},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
