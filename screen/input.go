package screen

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/bunnymark/bench"
)

// Input turns ebiten's per-tick input state into discrete bench events.
// The left mouse button and touches map to the touch action.
type Input struct {
	height  float64
	touches []ebiten.TouchID
}

func NewInput(height int) *Input {
	return &Input{height: float64(height)}
}

func (in *Input) pos(x, y int) bench.Vec2 {
	return bench.Vec2{X: float64(x), Y: in.height - float64(y)}
}

// Poll appends this tick's events to dst.
func (in *Input) Poll(dst []bench.InputEvent) []bench.InputEvent {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		dst = append(dst, bench.InputEvent{Action: bench.ActionTouch, Phase: bench.Pressed, Pos: in.pos(ebiten.CursorPosition())})
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		dst = append(dst, bench.InputEvent{Action: bench.ActionTouch, Phase: bench.Released, Pos: in.pos(ebiten.CursorPosition())})
	}

	in.touches = inpututil.AppendJustPressedTouchIDs(in.touches[:0])
	for _, id := range in.touches {
		dst = append(dst, bench.InputEvent{Action: bench.ActionTouch, Phase: bench.Pressed, Pos: in.pos(ebiten.TouchPosition(id))})
	}
	in.touches = inpututil.AppendJustReleasedTouchIDs(in.touches[:0])
	for _, id := range in.touches {
		dst = append(dst, bench.InputEvent{Action: bench.ActionTouch, Phase: bench.Released, Pos: in.pos(inpututil.TouchPositionInPreviousTick(id))})
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		dst = append(dst, bench.InputEvent{Action: bench.ActionToggleDebug, Phase: bench.Pressed})
	}
	if inpututil.IsKeyJustReleased(ebiten.KeyF1) {
		dst = append(dst, bench.InputEvent{Action: bench.ActionToggleDebug, Phase: bench.Released})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		dst = append(dst, bench.InputEvent{Action: bench.ActionQuit, Phase: bench.Pressed})
	}
	return dst
}
