package engine

// Label is a line of text at a fixed screen-space anchor. It implements
// bench.Display.
type Label struct {
	X, Y int
	text string
}

// NewLabel adds a label to the world.
func (w *World) NewLabel(x, y int) *Label {
	l := &Label{X: x, Y: y}
	w.labels = append(w.labels, l)
	return l
}

func (l *Label) SetText(text string) {
	l.text = text
}

func (l *Label) Text() string {
	return l.text
}

// Labels returns the world's labels in creation order.
func (w *World) Labels() []*Label {
	return w.labels
}
