package experiment

import (
	"context"
	"fmt"
	"sort"

	"github.com/san-kum/kinesim/internal/config"
	"github.com/san-kum/kinesim/internal/graph"
	"github.com/san-kum/kinesim/internal/logging"
	"github.com/san-kum/kinesim/internal/metrics"
	"github.com/san-kum/kinesim/internal/physics"
	"github.com/san-kum/kinesim/internal/scene"
	"github.com/san-kum/kinesim/internal/sim"
	"github.com/san-kum/kinesim/internal/vmath"
)

type Result struct {
	Steps   int                `json:"steps"`
	Time    float64            `json:"time"`
	Titles  []string           `json:"titles"`
	Graphs  [][]vmath.Vec2     `json:"graphs"`
	Metrics map[string]float64 `json:"metrics"`
	Errors  []string           `json:"errors,omitempty"`
}

type Experiment struct {
	cfg       *config.Config
	log       logging.Logger
	scene     *scene.Scene
	simulator *sim.Simulator
	sources   *Registry
	graphs    []*graph.Graph
	metrics   []metrics.Metric
}

// New builds a scene from the configured objects.
func New(cfg *config.Config, log logging.Logger) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sc := scene.New()
	for _, oc := range cfg.Objects {
		o, err := BuildObject(oc)
		if err != nil {
			return nil, err
		}
		if err := sc.Add(o); err != nil {
			return nil, err
		}
	}
	return FromScene(sc, cfg, log)
}

// FromScene wires an existing scene into a simulator with the configured
// graphs. cfg.Objects is ignored.
func FromScene(sc *scene.Scene, cfg *config.Config, log logging.Logger) (*Experiment, error) {
	log = logging.OrNoOp(log)
	e := &Experiment{
		cfg:       cfg,
		log:       log,
		scene:     sc,
		simulator: sim.New(log),
	}
	e.simulator.Add(sc)
	e.simulator.AddObserver(e)
	e.sources = NewRegistry(e.simulator, sc)

	for i, gc := range cfg.Graphs {
		g, err := e.AddGraph(gc)
		if err != nil {
			return nil, fmt.Errorf("graph %d: %w", i, err)
		}
		log.Debugf("graph %q bound", g.Title())
	}
	for _, o := range sc.Objects() {
		e.metrics = append(e.metrics, metrics.Defaults(o)...)
	}
	return e, nil
}

// BuildObject turns one configured object into a solid with every quantity.
func BuildObject(oc config.ObjectConfig) (*physics.Object, error) {
	size := oc.Size
	if size == vmath.Zero {
		size = vmath.V(1, 1)
	}
	o := physics.NewSolid(physics.SolidConfig{Name: oc.Name, Position: oc.Position, Size: size}, nil)

	if v, ok := physics.Lookup[*physics.Velocity](o, physics.KindVelocity); ok {
		v.SetInitialValue(oc.Velocity)
	}
	if a, ok := physics.Lookup[*physics.Acceleration](o, physics.KindAcceleration); ok {
		a.SetInitialValue(oc.Acceleration)
	}
	if m, ok := physics.Lookup[*physics.Mass](o, physics.KindMass); ok && oc.Mass > 0 {
		m.SetInitialValue(oc.Mass)
	}
	if oc.Centripetal != nil {
		c, ok := physics.Lookup[*physics.CentripetalAcceleration](o, physics.KindCentripetalAcceleration)
		if !ok {
			return nil, fmt.Errorf("object %s: %w", oc.Name, physics.ErrNotFound)
		}
		c.SetInitialValue(vmath.VectorModulus{Vector: oc.Centripetal.Center, Modulus: oc.Centripetal.Modulus})
	}
	return o, nil
}

func (e *Experiment) AddGraph(gc config.GraphConfig) (*graph.Graph, error) {
	sx, err := e.sources.Get(gc.X)
	if err != nil {
		return nil, err
	}
	sy, err := e.sources.Get(gc.Y)
	if err != nil {
		return nil, err
	}
	g, err := graph.New(sx, gc.XTarget, sy, gc.YTarget, gc.PointSize)
	if err != nil {
		return nil, err
	}
	e.graphs = append(e.graphs, g)
	e.simulator.AddSampler(g)
	return g, nil
}

// OnStep feeds the metrics. Step 0 marks a reset.
func (e *Experiment) OnStep(t float64, step int) {
	for _, m := range e.metrics {
		if step == 0 {
			m.Reset()
		}
		m.Observe(t)
	}
}

func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	res, err := e.simulator.Run(ctx, e.SimConfig())
	if res == nil {
		return nil, err
	}
	return e.collect(res), err
}

func (e *Experiment) SimConfig() sim.Config {
	return sim.Config{
		Dt:            e.cfg.Dt,
		Duration:      e.cfg.Duration,
		ValidateState: e.cfg.ValidateState,
		Realtime:      e.cfg.Realtime,
	}
}

func (e *Experiment) collect(res *sim.Result) *Result {
	out := &Result{
		Steps:   res.StepsTaken,
		Time:    res.Time,
		Metrics: e.Metrics(),
	}
	for _, g := range e.graphs {
		out.Titles = append(out.Titles, g.Title())
		out.Graphs = append(out.Graphs, g.Points())
		if g.Err() != nil {
			out.Errors = append(out.Errors, fmt.Sprintf("%s: %v", g.Title(), g.Err()))
		}
	}
	for _, err := range res.Errors {
		out.Errors = append(out.Errors, err.Error())
	}
	return out
}

func (e *Experiment) Metrics() map[string]float64 {
	out := make(map[string]float64, len(e.metrics))
	for _, m := range e.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

// MetricNames returns metric names sorted for stable output.
func (e *Experiment) MetricNames() []string {
	names := make([]string, 0, len(e.metrics))
	for _, m := range e.metrics {
		names = append(names, m.Name())
	}
	sort.Strings(names)
	return names
}

func (e *Experiment) Config() *config.Config    { return e.cfg }
func (e *Experiment) Scene() *scene.Scene       { return e.scene }
func (e *Experiment) Simulator() *sim.Simulator { return e.simulator }
func (e *Experiment) Sources() *Registry        { return e.sources }
func (e *Experiment) Graphs() []*graph.Graph    { return e.graphs }
