// Package event provides typed multi-reader broadcast channels. A channel
// is an append-only log of one event type; every reader owns a cursor and
// observes every event written after its registration, in write order.
// Channels are the only way systems publish cross-cutting effects (entity
// deletion, sound triggers, game over) without calling each other inline.
package event

import (
	"fmt"
	"iter"
	"sync/atomic"
)

// compactThreshold is how many events the slowest reader must have
// consumed before the log re-bases its backing slice. Readers hold
// absolute offsets, so compaction is invisible to them. A registered
// reader that is never read pins the log; drain every reader at least
// once per frame.
const compactThreshold = 256

var channelSerial atomic.Uint64

// ReaderID is a cursor into one channel's log. It is only valid for the
// channel that issued it; using it against another channel panics.
type ReaderID struct {
	index  int
	serial uint64
}

// Channel is an append-only bounded log of E. It is not safe for
// concurrent use; the game loop owns it.
type Channel[E any] struct {
	serial  uint64
	events  []E
	base    uint64 // absolute offset of events[0]
	cursors []uint64
}

func NewChannel[E any]() *Channel[E] {
	return &Channel[E]{serial: channelSerial.Add(1)}
}

// RegisterReader creates a cursor positioned at the current write head.
// The reader does not see events written before registration.
func (c *Channel[E]) RegisterReader() ReaderID {
	c.cursors = append(c.cursors, c.writeHead())
	return ReaderID{index: len(c.cursors) - 1, serial: c.serial}
}

// SingleWrite appends one event.
func (c *Channel[E]) SingleWrite(e E) {
	c.events = append(c.events, e)
}

// DrainVecWrite appends every event from the slice and empties it, so the
// producer can keep reusing its buffer without allocating.
func (c *Channel[E]) DrainVecWrite(events *[]E) {
	c.events = append(c.events, *events...)
	*events = (*events)[:0]
}

// Read returns the events written since the reader's cursor, in write
// order. The sequence is lazy and non-restartable: the cursor advances as
// events are consumed, so an early break resumes where it left off on the
// next Read.
func (c *Channel[E]) Read(r ReaderID) iter.Seq[E] {
	c.check(r)
	return func(yield func(E) bool) {
		for c.cursors[r.index] < c.writeHead() {
			e := c.events[c.cursors[r.index]-c.base]
			c.cursors[r.index]++
			if !yield(e) {
				break
			}
		}
		c.maybeCompact()
	}
}

// Pending reports how many events the reader has not consumed yet.
func (c *Channel[E]) Pending(r ReaderID) int {
	c.check(r)
	return int(c.writeHead() - c.cursors[r.index])
}

func (c *Channel[E]) writeHead() uint64 {
	return c.base + uint64(len(c.events))
}

func (c *Channel[E]) check(r ReaderID) {
	if r.serial != c.serial || r.index >= len(c.cursors) {
		panic(fmt.Sprintf("event: reader %d does not belong to this channel", r.index))
	}
}

// maybeCompact drops events older than the slowest cursor once enough of
// them have accumulated. This bounds the log: memory never exceeds the
// slowest reader's lag plus the compaction threshold.
func (c *Channel[E]) maybeCompact() {
	if len(c.cursors) == 0 {
		return
	}
	min := c.writeHead()
	for _, cur := range c.cursors {
		if cur < min {
			min = cur
		}
	}
	consumed := min - c.base
	if consumed < compactThreshold {
		return
	}
	n := copy(c.events, c.events[consumed:])
	// Zero the tail so dropped events do not outlive their slot.
	var zero E
	for i := n; i < len(c.events); i++ {
		c.events[i] = zero
	}
	c.events = c.events[:n]
	c.base = min
}
