package sim

import "fmt"

// Simulatable is anything the clock advances: objects, scenes, graphs.
type Simulatable interface {
	Simulate(step float64)
	Reset()
}

// Renderer is refreshed once after every tick.
type Renderer interface {
	Draw()
}

// Observer is called after every tick, and with step 0 after a reset.
type Observer interface {
	OnStep(t float64, step int)
}

// Validator is checked after every tick when Config.ValidateState is set.
type Validator interface {
	Valid() bool
}

type Config struct {
	Dt            float64
	Duration      float64
	ValidateState bool
	// Realtime paces ticks to wall-clock time.
	Realtime bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.01,
		Duration:      10.0,
		ValidateState: true,
	}
}

type Result struct {
	StepsTaken int
	Time       float64
	Errors     []error
}

type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
