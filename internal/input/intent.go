package input

// Intents are discrete requests queued by the keyboard poller and applied
// inside the per-frame update. Input handlers never mutate scene state
// directly: a multi-threaded host would deliver key events asynchronously,
// and serializing mutations through the frame callback avoids mid-frame
// tearing of agent or pool state.

// Direction is a nudge direction relative to the drone's local path frame.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Intent is one queued request. Exactly one field is meaningful per Kind.
type Intent struct {
	Kind      Kind
	Direction Direction
}

// Kind discriminates queued intents.
type Kind int

const (
	KindNudge Kind = iota
	KindCycleSpeed
	KindTogglePause
	KindToggleGrid
	KindToggleOverlay
)

// Queue collects intents between frames. Single-threaded: Push from the
// poller, Drain once per frame callback.
type Queue struct {
	pending []Intent
}

// Push appends an intent.
func (q *Queue) Push(in Intent) {
	q.pending = append(q.pending, in)
}

// Drain returns all pending intents in arrival order and empties the queue.
func (q *Queue) Drain() []Intent {
	out := q.pending
	q.pending = nil
	return out
}

// SpeedPresets is the cyclic speed ladder: stopped, slow, medium, fast, and
// back to stopped. Units are progress per frame.
var SpeedPresets = []float32{0, 0.0005, 0.001, 0.002}

// NextSpeed returns the preset following current in the cycle. An unknown
// current speed (e.g. set manually) restarts at the first preset.
func NextSpeed(current float32) float32 {
	for i, p := range SpeedPresets {
		if p == current {
			return SpeedPresets[(i+1)%len(SpeedPresets)]
		}
	}
	return SpeedPresets[0]
}
