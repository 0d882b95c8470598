package pong

// cpuQueue delays the CPU paddle. Every frame the ball position is scheduled
// and each entry is applied once its countdown has run out, so the paddle
// trails the ball by the configured reaction time. Countdowns are driven by
// frame time, not wall time.
type cpuQueue struct {
	delay   float64 // seconds
	pending []cpuMove
}

type cpuMove struct {
	remaining float64
	x         float64
}

// schedule queues a move to x. Without a delay it is applied at once.
func (q *cpuQueue) schedule(x float64, apply func(float64)) {
	if q.delay <= 0 {
		apply(x)
		return
	}
	q.pending = append(q.pending, cpuMove{remaining: q.delay, x: x})
}

// advance counts every pending move down by dt and applies those that are
// due, oldest first.
func (q *cpuQueue) advance(dt float64, apply func(float64)) {
	n := 0
	for _, m := range q.pending {
		m.remaining -= dt
		if m.remaining <= 0 {
			apply(m.x)
			continue
		}
		q.pending[n] = m
		n++
	}
	q.pending = q.pending[:n]
}

func (q *cpuQueue) clear() {
	q.pending = q.pending[:0]
}

func (q *cpuQueue) size() int {
	return len(q.pending)
}

func (g *Game) moveCPU(x float64) {
	g.arena.MovePaddle(2, x)
}
