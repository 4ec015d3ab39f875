package sim

import "fmt"

// EventKind classifies what happened to a ball during a tick.
type EventKind int

const (
	EventBallBall EventKind = iota + 1 // Two balls collided; A and B are pool indices
	EventPaddle                        // Ball A rebounded off the paddle
	EventWall                          // Ball A reflected off a wall
	EventCell                          // Ball A entered grid cell (Row, Col)
	EventServe                         // Ball A fell out and was served again
)

var eventNames = map[EventKind]string{
	EventBallBall: "ball",
	EventPaddle:   "paddle",
	EventWall:     "wall",
	EventCell:     "cell",
	EventServe:    "serve",
}

func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// ParseEventKind is the inverse of EventKind.String.
func ParseEventKind(s string) (EventKind, bool) {
	for k, name := range eventNames {
		if name == s {
			return k, true
		}
	}
	return 0, false
}

// Event records one interaction. B is -1 when only one ball is involved.
// T is the contact time within the step for ball-ball events.
type Event struct {
	Tick int
	Kind EventKind
	A, B int
	T    float32
	Row  int
	Col  int
}

func (e Event) String() string {
	switch e.Kind {
	case EventBallBall:
		return fmt.Sprintf("tick %d: balls %d/%d collide at t=%.3f", e.Tick, e.A, e.B, e.T)
	case EventCell:
		return fmt.Sprintf("tick %d: ball %d -> cell (%d,%d)", e.Tick, e.A, e.Row, e.Col)
	default:
		return fmt.Sprintf("tick %d: ball %d %s", e.Tick, e.A, e.Kind)
	}
}
