package control

// Action is an input event the launcher understands.
type Action int

const (
	None Action = iota
	Faster
	Slower
	Fire
)

func (a Action) String() string {
	switch a {
	case Faster:
		return "faster"
	case Slower:
		return "slower"
	case Fire:
		return "fire"
	default:
		return "none"
	}
}

var keyActions = map[string]Action{
	"up":    Faster,
	"right": Faster,
	"k":     Faster,
	"l":     Faster,
	"down":  Slower,
	"left":  Slower,
	"j":     Slower,
	"h":     Slower,
	" ":     Fire,
	"space": Fire,
	"enter": Fire,
}

// ActionFor maps a key name to its launcher action.
func ActionFor(key string) Action {
	return keyActions[key]
}
