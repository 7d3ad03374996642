package input

import "github.com/gdamore/tcell/v2"

// Queue buffers terminal events between two processing cycles. It is a plain
// FIFO: nothing is dropped and nothing blocks.
type Queue struct {
	events []tcell.Event
}

func (q *Queue) Push(ev tcell.Event) {
	q.events = append(q.events, ev)
}

func (q *Queue) Len() int {
	return len(q.events)
}

// Fill moves every event already waiting on ch into the queue without blocking.
func (q *Queue) Fill(ch <-chan tcell.Event) {
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return
			}
			q.Push(ev)
		default:
			return
		}
	}
}

// Drain calls fn for every queued event in arrival order, including events
// pushed by fn itself, and leaves the queue empty.
func (q *Queue) Drain(fn func(tcell.Event)) {
	for len(q.events) > 0 {
		ev := q.events[0]
		q.events[0] = nil
		q.events = q.events[1:]
		fn(ev)
	}
	q.events = nil
}
