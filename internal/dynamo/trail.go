package dynamo

const (
	DefaultTrailCapacity = 500
	DefaultTrailInterval = 5
)

// Trail is a bounded FIFO of past positions. When full, the oldest entry is
// overwritten.
type Trail struct {
	buf   []Vector3
	start int
	n     int
}

func NewTrail(capacity int) *Trail {
	if capacity <= 0 {
		capacity = DefaultTrailCapacity
	}
	return &Trail{buf: make([]Vector3, capacity)}
}

func (t *Trail) Push(p Vector3) {
	if t.n < len(t.buf) {
		t.buf[(t.start+t.n)%len(t.buf)] = p
		t.n++
		return
	}
	t.buf[t.start] = p
	t.start = (t.start + 1) % len(t.buf)
}

func (t *Trail) Len() int { return t.n }
func (t *Trail) Cap() int { return len(t.buf) }

// Points returns the trail oldest first. The slice is a copy.
func (t *Trail) Points() []Vector3 {
	out := make([]Vector3, t.n)
	for i := 0; i < t.n; i++ {
		out[i] = t.buf[(t.start+i)%len(t.buf)]
	}
	return out
}

// Clone returns an independent copy with the same capacity and points.
func (t *Trail) Clone() *Trail {
	c := &Trail{buf: make([]Vector3, len(t.buf)), start: t.start, n: t.n}
	copy(c.buf, t.buf)
	return c
}
