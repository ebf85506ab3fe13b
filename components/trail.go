package components

// Trail is a fixed-capacity FIFO of recent positions.
// Appending to a full trail evicts the oldest point.
type Trail struct {
	points []Position
	start  int // index of the oldest point
	n      int
}

// NewTrail creates an empty trail holding at most capacity points.
func NewTrail(capacity int) Trail {
	if capacity < 0 {
		panic("components: negative trail capacity")
	}
	return Trail{points: make([]Position, capacity)}
}

// Cap returns the maximum number of points retained.
func (t *Trail) Cap() int {
	return len(t.points)
}

// Len returns the number of points currently held.
func (t *Trail) Len() int {
	return t.n
}

// Append records p as the newest point.
func (t *Trail) Append(p Position) {
	c := len(t.points)
	if c == 0 {
		return
	}
	if t.n < c {
		t.points[(t.start+t.n)%c] = p
		t.n++
		return
	}
	// Full: overwrite the oldest slot and advance.
	t.points[t.start] = p
	t.start = (t.start + 1) % c
}

// At returns the i-th point, 0 being the oldest.
func (t *Trail) At(i int) Position {
	if i < 0 || i >= t.n {
		panic("components: trail index out of range")
	}
	return t.points[(t.start+i)%len(t.points)]
}

// Last returns the newest point and whether the trail is non-empty.
func (t *Trail) Last() (Position, bool) {
	if t.n == 0 {
		return Position{}, false
	}
	return t.At(t.n - 1), true
}

// AppendTo appends the points oldest-first to dst and returns the result.
func (t *Trail) AppendTo(dst []Position) []Position {
	c := len(t.points)
	for i := 0; i < t.n; i++ {
		dst = append(dst, t.points[(t.start+i)%c])
	}
	return dst
}

// Reset empties the trail without releasing its storage.
func (t *Trail) Reset() {
	t.start = 0
	t.n = 0
}
