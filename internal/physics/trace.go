package physics

import "github.com/san-kum/cannon/internal/dynamo"

// Trace is a fixed-capacity ring of recent positions. Pushing into a full
// trace drops the oldest point.
type Trace struct {
	buf  []dynamo.Vec2
	head int
	size int
}

func NewTrace(capacity int) *Trace {
	if capacity < 1 {
		capacity = 1
	}
	return &Trace{buf: make([]dynamo.Vec2, capacity)}
}

func (t *Trace) Push(p dynamo.Vec2) {
	idx := (t.head + t.size) % len(t.buf)
	t.buf[idx] = p
	if t.size < len(t.buf) {
		t.size++
		return
	}
	t.head = (t.head + 1) % len(t.buf)
}

// Points returns a copy of the trace ordered oldest to newest.
func (t *Trace) Points() []dynamo.Vec2 {
	out := make([]dynamo.Vec2, t.size)
	for i := 0; i < t.size; i++ {
		out[i] = t.buf[(t.head+i)%len(t.buf)]
	}
	return out
}

func (t *Trace) Len() int { return t.size }
func (t *Trace) Cap() int { return len(t.buf) }

// Reset empties the trace and resizes it.
func (t *Trace) Reset(capacity int) {
	if capacity < 1 {
		capacity = 1
	}
	t.buf = make([]dynamo.Vec2, capacity)
	t.head = 0
	t.size = 0
}
