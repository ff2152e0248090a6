package dynamo

// Field evaluates the acceleration on body i given every body's current position.
type Field[V Vector[V]] interface {
	Acceleration(i int, bodies []Body[V]) V
}

// Integrator advances all bodies by dt. Every body's new state is derived
// from the same frozen configuration.
type Integrator[V Vector[V]] interface {
	Name() string
	Step(f Field[V], bodies []Body[V], dt float64)
}

// Frame is a read-only copy of the session after a tick.
// When Merged is set, the body formerly at index Absorbed was folded into
// a lower index and every later body moved down one slot.
type Frame[V Vector[V]] struct {
	Tick     int
	Time     float64
	Bodies   []Body[V]
	Merged   bool
	Absorbed int
}

// BodyState is a dimension-free copy of one body, for renderers and
// exporters that handle both dimensions.
type BodyState struct {
	Mass float64   `json:"mass"`
	Pos  []float64 `json:"pos"`
	Vel  []float64 `json:"vel"`
}

// FrameState is the dimension-free form of a Frame.
type FrameState struct {
	Tick     int         `json:"tick"`
	Time     float64     `json:"time"`
	Merged   bool        `json:"merged,omitempty"`
	Absorbed int         `json:"absorbed,omitempty"`
	Bodies   []BodyState `json:"bodies"`
}

func (f Frame[V]) State() FrameState {
	out := FrameState{
		Tick:     f.Tick,
		Time:     f.Time,
		Merged:   f.Merged,
		Absorbed: f.Absorbed,
		Bodies:   make([]BodyState, len(f.Bodies)),
	}
	for i, b := range f.Bodies {
		out.Bodies[i] = BodyState{Mass: b.Mass, Pos: b.Pos.Components(), Vel: b.Vel.Components()}
	}
	return out
}

type Observer[V Vector[V]] interface {
	OnTick(f Frame[V])
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc[V Vector[V]] func(Frame[V])

func (fn ObserverFunc[V]) OnTick(f Frame[V]) { fn(f) }

type Metric[V Vector[V]] interface {
	Name() string
	Observe(f Frame[V])
	Value() float64
	Reset()
}

// Config holds the per-session constants.
type Config struct {
	Dt            float64
	G             float64
	Tolerance     float64
	MaxTicks      int
	ValidateState bool
}

const (
	DefaultDt        = 1.0
	DefaultG         = 1.0
	DefaultTolerance = 1e-5
)

func DefaultConfig() Config {
	return Config{
		Dt:            DefaultDt,
		G:             DefaultG,
		Tolerance:     DefaultTolerance,
		ValidateState: true,
	}
}

// Result summarises a finished run.
type Result struct {
	Ticks     int
	Time      float64
	Merges    int
	Remaining int
	Metrics   map[string]float64
}
