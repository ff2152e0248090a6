package export

import "github.com/san-kum/gravsim/internal/dynamo"

// Point is one recorded position of a body.
type Point struct {
	Time float64
	Pos  []float64
}

// Trail is the path of one body, identified by its load-time index.
// A trail ends at the tick its body is absorbed.
type Trail struct {
	ID     int
	Mass   float64
	Points []Point
}

// Recorder keeps every Every-th frame and the per-body trails. Body
// identity survives merges: the slot map is compacted the same way the
// store is.
type Recorder struct {
	Every int

	frames  []dynamo.FrameState
	ids     [][]int
	trails  []*Trail
	slots   []int
	seen    int
	started bool
}

func NewRecorder(every int) *Recorder {
	if every < 1 {
		every = 1
	}
	return &Recorder{Every: every}
}

// Start records the initial frame before any tick.
func (r *Recorder) Start(f dynamo.FrameState) {
	r.reset(f)
	r.keep(f)
}

func (r *Recorder) reset(f dynamo.FrameState) {
	r.frames = nil
	r.ids = nil
	r.trails = make([]*Trail, len(f.Bodies))
	r.slots = make([]int, len(f.Bodies))
	r.seen = 0
	for i, b := range f.Bodies {
		r.trails[i] = &Trail{ID: i, Mass: b.Mass}
		r.slots[i] = i
	}
	r.started = true
}

// Observe takes a frame produced by a tick. Without a prior Start the
// first observed frame defines the body IDs.
func (r *Recorder) Observe(f dynamo.FrameState) {
	if !r.started {
		r.reset(f)
	} else if f.Merged && f.Absorbed < len(r.slots) {
		r.slots = append(r.slots[:f.Absorbed], r.slots[f.Absorbed+1:]...)
	}
	r.seen++
	if r.seen%r.Every == 0 {
		r.keep(f)
	}
}

func (r *Recorder) keep(f dynamo.FrameState) {
	r.frames = append(r.frames, f)
	r.ids = append(r.ids, append([]int(nil), r.slots...))
	for i, b := range f.Bodies {
		if i >= len(r.slots) {
			break
		}
		t := r.trails[r.slots[i]]
		t.Mass = b.Mass
		t.Points = append(t.Points, Point{Time: f.Time, Pos: b.Pos})
	}
}

func (r *Recorder) Frames() []dynamo.FrameState { return r.frames }

func (r *Recorder) Trails() []Trail {
	out := make([]Trail, len(r.trails))
	for i, t := range r.trails {
		out[i] = *t
	}
	return out
}

// IDs returns the load-time index of every body in the k-th kept frame.
func (r *Recorder) IDs(k int) []int { return r.ids[k] }
