package ecs

// UpdateFrame is handed to every system during one scheduler tick.
type UpdateFrame struct {
	DeltaTime float64
	Elapsed   float64
	Tick      int64
	Commands  *Commands
	Storage   *Storage
}
