package component

// Input stores this frame's pointer, wheel and keyboard state. Positions are
// in layout pixels.
type Input struct {
	X, Y          float64
	Width, Height float64
	Inside        bool
	Touch         bool

	Down     bool
	Pressed  bool
	Released bool
	Moved    bool
	// WheelY is the wheel delta in pixels; positive scrolls down.
	WheelY float64

	Backspace bool
	Enter     bool
	Runes     []rune
	// Paste holds clipboard text when the paste shortcut was pressed.
	Paste string
}

// NDC returns the pointer in normalized device coordinates, +Y up.
func (in Input) NDC() (float64, float64) {
	if in.Width == 0 || in.Height == 0 {
		return 0, 0
	}
	return in.X/in.Width*2 - 1, 1 - in.Y/in.Height*2
}

var InputComponent = NewComponent[Input]()
