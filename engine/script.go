package engine

import (
	"github.com/plus3/bunnymark/ecs"
)

// ScriptSystem runs every attached script once per tick, in spawn order.
type ScriptSystem struct {
	Scripts ecs.Query[struct{ *ScriptRef }]
}

func (s *ScriptSystem) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Scripts.Values() {
		if item.Script != nil {
			item.Script.Update(frame.DeltaTime)
		}
	}
}
