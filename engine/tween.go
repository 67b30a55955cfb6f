package engine

import (
	"math"
	"reflect"

	"github.com/plus3/bunnymark/bench"
	"github.com/plus3/bunnymark/ecs"
)

// Ease maps linear progress p in [0,1] through the easing curve.
func Ease(e bench.Easing, p float64) float64 {
	switch e {
	case bench.EaseInQuad:
		return p * p
	case bench.EaseOutQuad:
		return p * (2 - p)
	case bench.EaseInOutQuad:
		if p < 0.5 {
			return 2 * p * p
		}
		return -1 + (4-2*p)*p
	default:
		return p
	}
}

// Progress returns the linear progress of a playback t seconds after its
// delay, and whether a one-shot playback has finished.
func Progress(mode bench.PlaybackMode, t, duration float64) (float64, bool) {
	if t <= 0 {
		return 0, false
	}
	if duration <= 0 {
		return 1, mode == bench.PlaybackOnce
	}

	switch mode {
	case bench.PlaybackLoopForward:
		return math.Mod(t, duration) / duration, false
	case bench.PlaybackLoopPingPong:
		phase := math.Mod(t, 2*duration)
		if phase <= duration {
			return phase / duration, false
		}
		return 2 - phase/duration, false
	default:
		if t >= duration {
			return 1, true
		}
		return t / duration, false
	}
}

// Value returns the animated value after advancing to tw.Elapsed.
func (tw *Tween) Value() float64 {
	p, done := Progress(tw.Mode, tw.Elapsed-tw.Delay, tw.Duration)
	tw.Done = done
	return tw.From + (tw.To-tw.From)*Ease(tw.Easing, p)
}

// TweenSystem advances every running tween and writes the animated
// value into the object's transform. Finished one-shot tweens are removed
// once the tick's systems have run.
type TweenSystem struct {
	Tweens ecs.Query[struct {
		ecs.EntityId
		*Transform
		*Tween
	}]
}

func (s *TweenSystem) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Tweens.Values() {
		tw := item.Tween
		if tw.Done {
			continue
		}
		tw.Elapsed += frame.DeltaTime
		item.Transform.Y = tw.Value()
		if tw.Done {
			id := item.EntityId
			frame.Commands.Defer(func() {
				frame.Storage.RemoveComponent(id, reflect.TypeFor[Tween]())
			})
		}
	}
}
