package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Control is a player command
type Control int

const (
	ControlAccelerate Control = iota
	ControlBrake
	ControlLeft
	ControlRight
	ControlNitro
	ControlHorn
	ControlDropObstacle
)

// InputSource reports which controls the player holds this tick
type InputSource interface {
	// Pressed returns true while the control is held
	Pressed(c Control) bool

	// JustPressed returns true on the tick the control went down
	JustPressed(c Control) bool

	// Update updates the input state
	Update()
}

// KeyboardInput reads controls from the keyboard: arrows or WASD to drive,
// shift for nitro, K for the horn and space to drop an obstacle
type KeyboardInput struct {
	bindings map[Control][]ebiten.Key
	keys     []ebiten.Key
}

// NewKeyboardInput creates the default key bindings
func NewKeyboardInput() *KeyboardInput {
	return &KeyboardInput{
		bindings: map[Control][]ebiten.Key{
			ControlAccelerate:   {ebiten.KeyArrowUp, ebiten.KeyW},
			ControlBrake:        {ebiten.KeyArrowDown, ebiten.KeyS},
			ControlLeft:         {ebiten.KeyArrowLeft, ebiten.KeyA},
			ControlRight:        {ebiten.KeyArrowRight, ebiten.KeyD},
			ControlNitro:        {ebiten.KeyShiftLeft, ebiten.KeyShiftRight},
			ControlHorn:         {ebiten.KeyK},
			ControlDropObstacle: {ebiten.KeySpace},
		},
		keys: make([]ebiten.Key, 0, 10),
	}
}

// Pressed returns true while any key bound to c is held
func (k *KeyboardInput) Pressed(c Control) bool {
	for _, bound := range k.bindings[c] {
		for _, key := range k.keys {
			if key == bound {
				return true
			}
		}
	}
	return false
}

// JustPressed returns true on the tick a key bound to c went down
func (k *KeyboardInput) JustPressed(c Control) bool {
	for _, key := range k.bindings[c] {
		if inpututil.IsKeyJustPressed(key) {
			return true
		}
	}
	return false
}

// Update refreshes the held keys
func (k *KeyboardInput) Update() {
	k.keys = inpututil.AppendPressedKeys(k.keys[:0])
}

// ScriptedInput replays a fixed set of held controls. Headless races and
// tests drive the player with it.
type ScriptedInput struct {
	Held map[Control]bool
	prev map[Control]bool
	now  map[Control]bool
}

// NewScriptedInput holds the given controls down
func NewScriptedInput(held ...Control) *ScriptedInput {
	s := &ScriptedInput{Held: make(map[Control]bool)}
	for _, c := range held {
		s.Held[c] = true
	}
	return s
}

// Pressed returns true while c is held
func (s *ScriptedInput) Pressed(c Control) bool {
	return s.now[c]
}

// JustPressed returns true on the first tick c is held
func (s *ScriptedInput) JustPressed(c Control) bool {
	return s.now[c] && !s.prev[c]
}

// Update latches the held controls for this tick
func (s *ScriptedInput) Update() {
	s.prev = s.now
	s.now = make(map[Control]bool, len(s.Held))
	for c, held := range s.Held {
		if held {
			s.now[c] = true
		}
	}
}
