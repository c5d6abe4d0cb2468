package input

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Keyboard polls raylib key state once per frame and queues intents.
// Bindings: arrows/WASD nudge the drone, Space cycles speed, P pauses,
// G toggles the grid, F1 toggles the debug overlay.
type Keyboard struct {
	queue *Queue
}

// NewKeyboard returns a poller feeding the given queue.
func NewKeyboard(queue *Queue) *Keyboard {
	return &Keyboard{queue: queue}
}

// Poll reads pressed keys for this frame. IsKeyPressed fires once per press,
// so each tap queues exactly one intent (nudges are discrete, not steering).
func (k *Keyboard) Poll() {
	if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyW) {
		k.queue.Push(Intent{Kind: KindNudge, Direction: DirUp})
	}
	if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyS) {
		k.queue.Push(Intent{Kind: KindNudge, Direction: DirDown})
	}
	if rl.IsKeyPressed(rl.KeyLeft) || rl.IsKeyPressed(rl.KeyA) {
		k.queue.Push(Intent{Kind: KindNudge, Direction: DirLeft})
	}
	if rl.IsKeyPressed(rl.KeyRight) || rl.IsKeyPressed(rl.KeyD) {
		k.queue.Push(Intent{Kind: KindNudge, Direction: DirRight})
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		k.queue.Push(Intent{Kind: KindCycleSpeed})
	}
	if rl.IsKeyPressed(rl.KeyP) {
		k.queue.Push(Intent{Kind: KindTogglePause})
	}
	if rl.IsKeyPressed(rl.KeyG) {
		k.queue.Push(Intent{Kind: KindToggleGrid})
	}
	if rl.IsKeyPressed(rl.KeyF1) {
		k.queue.Push(Intent{Kind: KindToggleOverlay})
	}
}
