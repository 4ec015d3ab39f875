package core

// Action is a semantic input, decoupled from physical keys.
type Action int

const (
	ActionNone   Action = iota
	ActionLeft          // Move the paddle left
	ActionRight         // Move the paddle right
	ActionAuto          // Toggle paddle autopilot
	ActionFaster        // Raise the speed level
	ActionSlower        // Lower the speed level
	ActionPause         // Toggle pause
	ActionReset         // Restart the scenario
	ActionQuit          // Leave the viewer
)

var actionNames = map[Action]string{
	ActionNone:   "None",
	ActionLeft:   "Left",
	ActionRight:  "Right",
	ActionAuto:   "Auto",
	ActionFaster: "Faster",
	ActionSlower: "Slower",
	ActionPause:  "Pause",
	ActionReset:  "Reset",
	ActionQuit:   "Quit",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// InputFrame is the set of actions triggered during one tick.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame returns an empty frame.
func NewInputFrame() InputFrame {
	return InputFrame{Actions: make(map[Action]bool)}
}

// Set marks an action as triggered.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has reports whether the action was triggered.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Clear empties the frame for the next tick.
func (f *InputFrame) Clear() {
	clear(f.Actions)
}
