package bench

// DefaultSampleCount is the default number of frames in the rolling window.
const DefaultSampleCount = 60

// DefaultLowFPS is the default threshold below which the meter reports load.
const DefaultLowFPS = 60.0

// SampleWindow is a fixed-size circular buffer of frame durations with a
// running sum. Only filled slots take part in the average, so the first
// readings are not biased by empty slots.
type SampleWindow struct {
	values []float64
	index  int
	filled int
	sum    float64
}

// NewSampleWindow allocates a window of k samples. k must be positive.
func NewSampleWindow(k int) *SampleWindow {
	if k <= 0 {
		panic("sample window size must be positive")
	}
	return &SampleWindow{values: make([]float64, k)}
}

// Push replaces the oldest sample with v and returns the new average.
func (w *SampleWindow) Push(v float64) float64 {
	w.sum += v - w.values[w.index]
	w.values[w.index] = v
	w.index++
	if w.filled < len(w.values) {
		w.filled++
	}

	if w.index == len(w.values) {
		w.index = 0
		// Re-derive the sum once per lap so add/subtract rounding cannot drift.
		w.sum = 0
		for _, s := range w.values {
			w.sum += s
		}
	}

	return w.Average()
}

// Average returns the mean of the filled samples, or 0 when empty.
func (w *SampleWindow) Average() float64 {
	if w.filled == 0 {
		return 0
	}
	return w.sum / float64(w.filled)
}

// Sum returns the running sum of the current contents.
func (w *SampleWindow) Sum() float64 {
	return w.sum
}

// Len returns the number of filled samples.
func (w *SampleWindow) Len() int {
	return w.filled
}

// Cap returns the window size.
func (w *SampleWindow) Cap() int {
	return len(w.values)
}

// Samples copies the filled samples into dst, oldest first.
func (w *SampleWindow) Samples(dst []float64) []float64 {
	dst = dst[:0]
	start := 0
	if w.filled == len(w.values) {
		start = w.index
	}
	for i := 0; i < w.filled; i++ {
		dst = append(dst, w.values[(start+i)%len(w.values)])
	}
	return dst
}

// Meter turns frame durations into a smoothed frame rate.
type Meter struct {
	window    *SampleWindow
	threshold float64
	fps       float64
}

// NewMeter creates a meter averaging over k frames that reports Low below
// threshold frames per second.
func NewMeter(k int, threshold float64) *Meter {
	if threshold < 0 {
		panic("low fps threshold cannot be negative")
	}
	return &Meter{
		window:    NewSampleWindow(k),
		threshold: threshold,
	}
}

// Update records one frame of dt seconds and returns the smoothed FPS.
func (m *Meter) Update(dt float64) float64 {
	avg := m.window.Push(dt)
	if avg > 0 {
		m.fps = 1 / avg
	} else {
		m.fps = 0
	}
	return m.fps
}

// FPS returns the last smoothed frame rate.
func (m *Meter) FPS() float64 {
	return m.fps
}

// Low reports whether the smoothed frame rate is under the threshold.
func (m *Meter) Low() bool {
	return m.Below(m.threshold)
}

// fpsEpsilon absorbs the rounding of 1/avg, so a steady 1/60 s frame time
// reads as 60 fps rather than just under it.
const fpsEpsilon = 1e-6

// Below reports whether the smoothed frame rate is under fps. A meter with
// no samples yet is never below.
func (m *Meter) Below(fps float64) bool {
	return m.window.Len() > 0 && m.fps < fps-fpsEpsilon
}

// Threshold returns the Low threshold.
func (m *Meter) Threshold() float64 {
	return m.threshold
}

// Window exposes the underlying samples.
func (m *Meter) Window() *SampleWindow {
	return m.window
}
