package bench_test

import (
	"github.com/plus3/bunnymark/bench"
)

// boundedFactory hands out sequential handles until max is reached.
type boundedFactory struct {
	max     int
	created int
}

func (f *boundedFactory) Create() (bench.Handle, bool) {
	if f.created >= f.max {
		return 0, false
	}
	f.created++
	return bench.Handle(f.created), true
}

// releasingFactory records the handles given back to it.
type releasingFactory struct {
	boundedFactory
	released []bench.Handle
}

func (f *releasingFactory) Release(h bench.Handle) {
	f.released = append(f.released, h)
	f.created--
}

type boundedNodes struct {
	boundedFactory
	sized []bench.Handle
}

func (n *boundedNodes) NewBox(bench.Vec2) (bench.Handle, bool) {
	return n.Create()
}

func (n *boundedNodes) SetSizeAuto(h bench.Handle) {
	n.sized = append(n.sized, h)
}

type recordingGraph struct {
	positions map[bench.Handle]bench.Vec2
	variants  map[bench.Handle]bench.Variant
	anims     map[bench.Handle]bench.Animation
}

func newRecordingGraph() *recordingGraph {
	return &recordingGraph{
		positions: make(map[bench.Handle]bench.Vec2),
		variants:  make(map[bench.Handle]bench.Variant),
		anims:     make(map[bench.Handle]bench.Animation),
	}
}

func (g *recordingGraph) SetPosition(h bench.Handle, pos bench.Vec2) { g.positions[h] = pos }
func (g *recordingGraph) SetVariant(h bench.Handle, v bench.Variant) { g.variants[h] = v }
func (g *recordingGraph) Animate(h bench.Handle, a bench.Animation)  { g.anims[h] = a }

type textSink struct {
	lines []string
}

func (s *textSink) SetText(text string) { s.lines = append(s.lines, text) }

func (s *textSink) last() string {
	if len(s.lines) == 0 {
		return ""
	}
	return s.lines[len(s.lines)-1]
}
