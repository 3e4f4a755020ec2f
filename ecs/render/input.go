package render

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/folio/ecs/component"
	"go.uber.org/zap"
	"golang.design/x/clipboard"
)

const (
	// wheelPixels converts ebiten wheel ticks to DOM-style pixel deltas.
	wheelPixels = 100
	repeatDelay = 30
	repeatEvery = 3
)

// EbitenInput reads pointer, wheel and keyboard state from ebiten. It
// implements system.InputSource.
type EbitenInput struct {
	logger *zap.Logger

	width, height float64

	clipOnce sync.Once
	clipOK   bool

	touches []ebiten.TouchID
}

func NewEbitenInput(logger *zap.Logger) *EbitenInput {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EbitenInput{logger: logger}
}

// SetSize records the logical screen size from Layout.
func (in *EbitenInput) SetSize(width, height float64) {
	in.width, in.height = width, height
}

func (in *EbitenInput) Poll(prev component.Input) component.Input {
	cur := component.Input{Width: in.width, Height: in.height}

	in.touches = ebiten.AppendTouchIDs(in.touches[:0])
	if len(in.touches) > 0 || len(inpututil.AppendJustReleasedTouchIDs(nil)) > 0 {
		cur.Touch = true
	}

	switch {
	case len(in.touches) > 0:
		x, y := ebiten.TouchPosition(in.touches[0])
		cur.X, cur.Y = float64(x), float64(y)
		cur.Down = true
		cur.Pressed = len(inpututil.AppendJustPressedTouchIDs(nil)) > 0
	case cur.Touch:
		// The finger lifted this frame; keep the last known position.
		cur.X, cur.Y = prev.X, prev.Y
		cur.Released = true
	default:
		x, y := ebiten.CursorPosition()
		cur.X, cur.Y = float64(x), float64(y)
		cur.Down = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
		cur.Pressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
		cur.Released = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	}

	cur.Inside = ebiten.IsFocused() &&
		cur.X >= 0 && cur.Y >= 0 && cur.X < cur.Width && cur.Y < cur.Height
	cur.Moved = cur.X != prev.X || cur.Y != prev.Y

	_, dy := ebiten.Wheel()
	cur.WheelY = -dy * wheelPixels

	cur.Backspace = repeating(ebiten.KeyBackspace)
	cur.Enter = inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter)

	modifier := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	if modifier && inpututil.IsKeyJustPressed(ebiten.KeyV) {
		cur.Paste = in.readClipboard()
	} else if !modifier {
		cur.Runes = ebiten.AppendInputChars(nil)
	}
	return cur
}

func (in *EbitenInput) readClipboard() string {
	in.clipOnce.Do(func() {
		if err := clipboard.Init(); err != nil {
			in.logger.Warn("clipboard unavailable", zap.Error(err))
			return
		}
		in.clipOK = true
	})
	if !in.clipOK {
		return ""
	}
	return string(clipboard.Read(clipboard.FmtText))
}

// repeating reports a key press, repeating while the key is held.
func repeating(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	if d == 1 {
		return true
	}
	return d >= repeatDelay && (d-repeatDelay)%repeatEvery == 0
}
