// Package screen puts an engine.World on an ebiten window: it draws the
// objects, polls mouse, touch and keys into bench input events and runs the
// frame loop around a bench.Driver.
package screen

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/plus3/bunnymark/bench"
	"github.com/plus3/bunnymark/ecs"
	"github.com/plus3/bunnymark/engine"
)

var palette = [bench.VariantCount]color.RGBA{
	{40, 40, 48, 255},
	{236, 153, 46, 255},
	{245, 245, 245, 255},
	{229, 196, 92, 255},
	{96, 160, 88, 255},
	{24, 24, 24, 255},
	{44, 98, 214, 255},
	{206, 40, 48, 255},
	{220, 220, 228, 255},
	{30, 72, 180, 255},
	{60, 220, 240, 255},
	{238, 196, 30, 255},
}

var background = color.RGBA{120, 144, 200, 255}

// Screen is the render target handed to the render system for one Draw.
type Screen struct {
	Image *ebiten.Image
}

// RenderSystem draws every visible sprite, world layer first, then GUI
// nodes, then the world's labels. World y points up; it is flipped here.
type RenderSystem struct {
	Sprites ecs.Query[struct {
		*engine.Transform
		*engine.Sprite
	}]
	Screen ecs.Singleton[Screen]

	world   *engine.World
	height  float64
	sprites [bench.VariantCount]*ebiten.Image
	opts    ebiten.DrawImageOptions
}

// NewRenderSystem builds the sprite atlas. height is the logical screen height.
func NewRenderSystem(world *engine.World, height int) *RenderSystem {
	s := &RenderSystem{world: world, height: float64(height)}

	atlas := ebiten.NewImage(engine.SpriteWidth*bench.VariantCount, engine.SpriteHeight)
	for i := range s.sprites {
		rect := image.Rect(i*engine.SpriteWidth, 0, (i+1)*engine.SpriteWidth, engine.SpriteHeight)
		sub := atlas.SubImage(rect).(*ebiten.Image)
		sub.Fill(palette[i])
		s.sprites[i] = sub
	}
	return s
}

func (s *RenderSystem) Execute(frame *ecs.UpdateFrame) {
	target := s.Screen.Get()
	if target == nil || target.Image == nil {
		return
	}
	screen := target.Image
	screen.Fill(background)

	s.drawLayer(screen, engine.LayerWorld)
	s.drawLayer(screen, engine.LayerGUI)

	for _, l := range s.world.Labels() {
		ebitenutil.DebugPrintAt(screen, l.Text(), l.X, l.Y)
	}
}

func (s *RenderSystem) drawLayer(screen *ebiten.Image, layer engine.Layer) {
	const halfW, halfH = engine.SpriteWidth / 2, engine.SpriteHeight / 2

	for item := range s.Sprites.Values() {
		if item.Layer != layer || item.Hidden || int(item.Variant) >= bench.VariantCount {
			continue
		}
		s.opts.GeoM.Reset()
		s.opts.GeoM.Translate(item.X-halfW, s.height-item.Y-halfH)
		screen.DrawImage(s.sprites[item.Variant], &s.opts)
	}
}
