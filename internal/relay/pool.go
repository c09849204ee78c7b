package relay

// pool holds the connections waiting for a match. Dequeue pops the tail,
// so the newest waiter is matched first. That is the behavior clients
// observe in production and it is kept on purpose; do not "fix" it to
// FIFO without also changing the clients' expectations.
//
// Only the hub goroutine touches the pool, so it needs no locking.
type pool struct {
	waiting []*Client
}

// Enqueue appends a connection. A connection already in the pool is left
// where it is; duplicates are never stored.
func (p *pool) Enqueue(c *Client) {
	for _, w := range p.waiting {
		if w.ID == c.ID {
			return
		}
	}
	p.waiting = append(p.waiting, c)
}

// DequeueAny removes and returns the most recently enqueued connection,
// or false if the pool is empty.
func (p *pool) DequeueAny() (*Client, bool) {
	if len(p.waiting) == 0 {
		return nil, false
	}
	last := len(p.waiting) - 1
	c := p.waiting[last]
	p.waiting[last] = nil
	p.waiting = p.waiting[:last]
	return c, true
}

// Remove deletes a specific connection if present, no-op otherwise.
func (p *pool) Remove(c *Client) {
	for i, w := range p.waiting {
		if w.ID == c.ID {
			p.waiting = append(p.waiting[:i], p.waiting[i+1:]...)
			return
		}
	}
}

// Len reports how many connections are waiting.
func (p *pool) Len() int {
	return len(p.waiting)
}
