package sim

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/san-kum/kinesim/internal/logging"
)

// Simulator is the simulation clock. One tick simulates every body in
// registration order, advances time, then samples every sampler. It is not
// safe for concurrent use.
type Simulator struct {
	bodies    []Simulatable
	samplers  []Simulatable
	renderers []Renderer
	observers []Observer
	log       logging.Logger

	time  float64
	steps int
}

func New(log logging.Logger) *Simulator {
	return &Simulator{log: logging.OrNoOp(log)}
}

func (s *Simulator) Add(b Simulatable)        { s.bodies = append(s.bodies, b) }
func (s *Simulator) AddSampler(g Simulatable) { s.samplers = append(s.samplers, g) }
func (s *Simulator) AddRenderer(r Renderer)   { s.renderers = append(s.renderers, r) }
func (s *Simulator) AddObserver(o Observer)   { s.observers = append(s.observers, o) }
func (s *Simulator) Time() float64            { return s.time }
func (s *Simulator) Steps() int               { return s.steps }
func (s *Simulator) Samplers() []Simulatable  { return s.samplers }

// Remove unregisters x from bodies or samplers.
func (s *Simulator) Remove(x Simulatable) bool {
	for _, list := range []*[]Simulatable{&s.bodies, &s.samplers} {
		for i, v := range *list {
			if v == x {
				*list = append((*list)[:i], (*list)[i+1:]...)
				return true
			}
		}
	}
	return false
}

// Reset rewinds the clock, clears observed offsets and re-samples every
// sampler at t=0. Observers are notified with step 0.
func (s *Simulator) Reset() {
	s.time = 0
	s.steps = 0
	for _, b := range s.bodies {
		b.Reset()
	}
	for _, g := range s.samplers {
		g.Reset()
	}
	s.draw()
	s.notify()
}

func (s *Simulator) Tick(step float64) {
	for _, b := range s.bodies {
		b.Simulate(step)
	}
	s.time += step
	s.steps++
	for _, g := range s.samplers {
		g.Simulate(step)
	}
	s.draw()
	s.notify()
}

func (s *Simulator) notify() {
	for _, o := range s.observers {
		o.OnStep(s.time, s.steps)
	}
}

func (s *Simulator) draw() {
	for _, r := range s.renderers {
		r.Draw()
	}
}

func (s *Simulator) valid() bool {
	for _, b := range s.bodies {
		if v, ok := b.(Validator); ok && !v.Valid() {
			return false
		}
	}
	return true
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w, got %f", ErrInvalidDt, cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("%w, got %f", ErrInvalidSpan, cfg.Duration)
	}
	return nil
}

// Run resets the clock and ticks until cfg.Duration has elapsed or ctx is
// done.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(math.Round(cfg.Duration / cfg.Dt))
	result := &Result{Errors: make([]error, 0)}

	s.log.Infof("run started: dt=%g duration=%g steps=%d", cfg.Dt, cfg.Duration, steps)
	s.Reset()

	var ticker *time.Ticker
	if cfg.Realtime {
		ticker = time.NewTicker(time.Duration(cfg.Dt * float64(time.Second)))
		defer ticker.Stop()
	}

	for i := 0; i < steps; i++ {
		if ticker != nil {
			select {
			case <-ctx.Done():
				return s.finish(result), ctx.Err()
			case <-ticker.C:
			}
		} else {
			select {
			case <-ctx.Done():
				return s.finish(result), ctx.Err()
			default:
			}
		}

		s.Tick(cfg.Dt)

		if cfg.ValidateState && !s.valid() {
			err := SimError{Time: s.time, Step: s.steps, Message: ErrInvalidState.Error()}
			s.log.Warnf("%v", err)
			result.Errors = append(result.Errors, err)
			break
		}
	}

	s.finish(result)
	s.log.Infof("run finished: t=%g steps=%d", result.Time, result.StepsTaken)
	return result, nil
}

func (s *Simulator) finish(r *Result) *Result {
	r.StepsTaken = s.steps
	r.Time = s.time
	return r
}
