package input

import "sync"

// Key identifies a movement key the game cares about.
type Key int

const (
	KeyUp Key = iota
	KeyDown
)

// Held is a queryable set of currently held keys.
type Held interface {
	Held(k Key) bool
}

// KeySet is a Held implementation safe for one writer goroutine
// (the input reader) and one reader (the frame loop).
type KeySet struct {
	mu   sync.Mutex
	keys map[Key]struct{}
}

// NewKeySet creates an empty key set.
func NewKeySet() *KeySet {
	return &KeySet{keys: make(map[Key]struct{})}
}

// Press marks k as held. Pressing an already held key is a no-op.
func (ks *KeySet) Press(k Key) {
	ks.mu.Lock()
	ks.keys[k] = struct{}{}
	ks.mu.Unlock()
}

// Release marks k as no longer held.
func (ks *KeySet) Release(k Key) {
	ks.mu.Lock()
	delete(ks.keys, k)
	ks.mu.Unlock()
}

// Set presses or releases k.
func (ks *KeySet) Set(k Key, held bool) {
	if held {
		ks.Press(k)
	} else {
		ks.Release(k)
	}
}

// Held reports whether k is currently held.
func (ks *KeySet) Held(k Key) bool {
	ks.mu.Lock()
	defer ks.mu.Unlock()
	_, ok := ks.keys[k]
	return ok
}

// Clear releases every key.
func (ks *KeySet) Clear() {
	ks.mu.Lock()
	clear(ks.keys)
	ks.mu.Unlock()
}

// Apply copies the movement keys of a frame's Input into the set.
func (ks *KeySet) Apply(in Input) {
	ks.Set(KeyUp, in.Up)
	ks.Set(KeyDown, in.Down)
}

// Compile-time check that KeySet implements Held.
var _ Held = (*KeySet)(nil)
