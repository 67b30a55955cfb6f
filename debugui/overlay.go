package debugui

import (
	"github.com/hajimehoshi/ebiten/v2"
	debugui_ebiten "github.com/plus3/bunnymark/debugui/ebiten"
	"github.com/plus3/bunnymark/ecs"
	"github.com/sirupsen/logrus"
)

// Overlay runs the ImGui panels over the game. It starts hidden.
type Overlay struct {
	backend   debugui_ebiten.ImguiBackend
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	input     *ecs.Singleton[ImguiInputState]
	panel     *PerformancePanel
	visible   bool
}

// NewOverlay spawns panel and every extra panel as ImguiItems in a storage
// owned by the overlay.
func NewOverlay(backend debugui_ebiten.ImguiBackend, panel *PerformancePanel, extra ...interface{ Render() }) *Overlay {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[ImguiItem](registry)

	storage := ecs.NewStorage(registry)
	storage.Spawn(ImguiItem{Render: panel.Render})
	for _, p := range extra {
		storage.Spawn(ImguiItem{Render: p.Render})
	}
	input := ecs.NewSingleton[ImguiInputState](storage)

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&ImguiSystem{})

	return &Overlay{
		backend:   backend,
		storage:   storage,
		scheduler: scheduler,
		input:     input,
		panel:     panel,
	}
}

func (o *Overlay) BeginFrame() {
	o.backend.BeginFrame()
}

func (o *Overlay) EndFrame() {
	o.panel.Record()
	if o.visible {
		o.scheduler.Once(0)
	}
	o.backend.EndFrame()
}

func (o *Overlay) Draw(screen *ebiten.Image) {
	o.backend.Draw(screen)
}

func (o *Overlay) Layout(width, height int) {
	o.backend.Layout(width, height)
}

func (o *Overlay) Toggle() {
	o.visible = !o.visible
	logrus.WithField("visible", o.visible).Info("Debug overlay toggled")
}

// Visible reports whether the panels are drawn.
func (o *Overlay) Visible() bool {
	return o.visible
}

// WantsMouse reports whether ImGui captured the mouse on the last frame.
func (o *Overlay) WantsMouse() bool {
	return o.visible && o.input.Get().WantCaptureMouse
}
