package automation

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/kinesim/internal/config"
	"github.com/san-kum/kinesim/internal/experiment"
	"github.com/san-kum/kinesim/internal/logging"
	"github.com/san-kum/kinesim/internal/physics"
	"github.com/san-kum/kinesim/internal/vmath"
)

var ErrNoBase = errors.New("automation: step needs a preset or a config file")

// Scenario defines a scripted simulation sequence
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single step in a scenario
type ScenarioStep struct {
	Preset   string             `yaml:"preset"`
	Config   string             `yaml:"config"`
	Duration float64            `yaml:"duration"`
	Dt       float64            `yaml:"dt"`
	Set      map[string]float64 `yaml:"set"`
	SaveAs   string             `yaml:"save_as"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// Resolve builds the run configuration of one step.
func (s ScenarioStep) Resolve() (*config.Config, error) {
	var cfg *config.Config
	switch {
	case s.Preset != "":
		cfg = config.GetPreset(s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
	case s.Config != "":
		loaded, err := config.Load(s.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	default:
		return nil, ErrNoBase
	}

	if s.Duration > 0 {
		cfg.Duration = s.Duration
	}
	if s.Dt > 0 {
		cfg.Dt = s.Dt
	}
	for path, v := range s.Set {
		if err := cfg.SetParam(path, v); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// RunScenario executes all steps in a scenario
func RunScenario(ctx context.Context, scenario *Scenario, log logging.Logger) ([]*experiment.Result, error) {
	log = logging.OrNoOp(log)
	results := make([]*experiment.Result, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg, err := step.Resolve()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		log.Infof("running step %d/%d (%d objects)", i+1, len(scenario.Steps), len(cfg.Objects))

		exp, err := experiment.New(cfg, log)
		if err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		results = append(results, result)
	}

	return results, nil
}

// ParameterSweep varies one initial component over [ParamMin, ParamMax]
type ParameterSweep struct {
	Base     *config.Config
	Object   string
	Param    string
	ParamMin float64
	ParamMax float64
	NumSteps int
	// Workers bounds concurrent runs; zero means GOMAXPROCS.
	Workers int
}

// SweepResult holds the outcome of one sweep value
type SweepResult struct {
	ParamValue    float64    `json:"param_value"`
	FinalPosition vmath.Vec2 `json:"final_position"`
	MaxHeight     float64    `json:"max_height"`
	Range         float64    `json:"range"`
	Steps         int        `json:"steps"`
}

func (s *ParameterSweep) values() []float64 {
	if s.NumSteps <= 1 {
		return []float64{s.ParamMin}
	}
	step := (s.ParamMax - s.ParamMin) / float64(s.NumSteps-1)
	vals := make([]float64, s.NumSteps)
	for i := range vals {
		vals[i] = s.ParamMin + float64(i)*step
	}
	return vals
}

// RunSweep executes a parameter sweep. Runs are independent and execute
// concurrently; results keep sweep order.
func RunSweep(ctx context.Context, sweep *ParameterSweep, log logging.Logger) ([]SweepResult, error) {
	log = logging.OrNoOp(log)
	if sweep.Base == nil {
		return nil, ErrNoBase
	}
	vals := sweep.values()
	results := make([]SweepResult, len(vals))

	workers := sweep.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, v := range vals {
		g.Go(func() error {
			cfg := sweep.Base.Clone()
			if err := cfg.SetParam(sweep.Object+"."+sweep.Param, v); err != nil {
				return err
			}
			r, err := runOne(ctx, cfg, sweep.Object)
			if err != nil {
				return fmt.Errorf("%s=%g: %w", sweep.Param, v, err)
			}
			r.ParamValue = v
			results[i] = r
			log.Debugf("sweep %d/%d: %s=%.4f", i+1, len(vals), sweep.Param, v)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func runOne(ctx context.Context, cfg *config.Config, object string) (SweepResult, error) {
	exp, err := experiment.New(cfg, nil)
	if err != nil {
		return SweepResult{}, err
	}
	res, err := exp.Run(ctx)
	if err != nil {
		return SweepResult{}, err
	}
	o, err := exp.Scene().Get(object)
	if err != nil {
		return SweepResult{}, err
	}

	out := SweepResult{Steps: res.Steps, MaxHeight: res.Metrics[object+".max_height"]}
	if p, ok := physics.Lookup[*physics.Position](o, physics.KindPosition); ok {
		out.FinalPosition = p.Value()
	}
	if d, ok := physics.Lookup[*physics.Displacement](o, physics.KindDisplacement); ok {
		out.Range = d.Value().X
	}
	return out, nil
}

// MonteCarloConfig perturbs an object's initial velocity
type MonteCarloConfig struct {
	Base         *config.Config
	Object       string
	Perturbation float64
	NumTrials    int
	Seed         int64
}

// MonteCarloResult holds the outcome of one perturbed run
type MonteCarloResult struct {
	TrialID       int        `json:"trial_id"`
	InitVelocity  vmath.Vec2 `json:"init_velocity"`
	FinalPosition vmath.Vec2 `json:"final_position"`
	Stable        bool       `json:"stable"` // state stayed finite
}

// RunMonteCarlo executes multiple trials with random perturbations
func RunMonteCarlo(ctx context.Context, mc *MonteCarloConfig) ([]MonteCarloResult, error) {
	if mc.Base == nil {
		return nil, ErrNoBase
	}
	seed := mc.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	results := make([]MonteCarloResult, 0, mc.NumTrials)

	for trial := 0; trial < mc.NumTrials; trial++ {
		cfg := mc.Base.Clone()
		var base vmath.Vec2
		for _, o := range cfg.Objects {
			if o.Name == mc.Object {
				base = o.Velocity
			}
		}
		v := base.Add(vmath.V(rng.NormFloat64(), rng.NormFloat64()).Scale(mc.Perturbation))
		if err := cfg.SetParam(mc.Object+".velocity.x", v.X); err != nil {
			return results, err
		}
		cfg.SetParam(mc.Object+".velocity.y", v.Y)

		r, err := runOne(ctx, cfg, mc.Object)
		if err != nil {
			return results, fmt.Errorf("trial %d: %w", trial, err)
		}
		results = append(results, MonteCarloResult{
			TrialID:       trial,
			InitVelocity:  v,
			FinalPosition: r.FinalPosition,
			Stable:        r.FinalPosition.IsFinite(),
		})
	}
	return results, nil
}
