package platform

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/blockfall/sim"
)

// Keyboard reports actions from key presses. Each action fires once per
// press, on the tick the key goes down.
type Keyboard struct {
	bindings map[sim.Action][]ebiten.Key
	quit     []ebiten.Key

	justPressed func(ebiten.Key) bool
	pressed     func(ebiten.Key) bool
}

// NewKeyboard parses key names, one or more per action separated by commas,
// using Ebiten's key names ("Space", "Enter", "ArrowDown", "F1", ...).
func NewKeyboard(names map[sim.Action]string) (*Keyboard, error) {
	k := &Keyboard{
		bindings:    make(map[sim.Action][]ebiten.Key, len(names)),
		quit:        []ebiten.Key{ebiten.KeyEscape},
		justPressed: inpututil.IsKeyJustPressed,
		pressed:     ebiten.IsKeyPressed,
	}
	for action, name := range names {
		keys, err := parseKeys(name)
		if err != nil {
			return nil, fmt.Errorf("binding %s: %w", action, err)
		}
		k.bindings[action] = keys
	}
	return k, nil
}

func parseKeys(names string) ([]ebiten.Key, error) {
	var keys []ebiten.Key
	for _, name := range strings.Split(names, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		var key ebiten.Key
		if err := key.UnmarshalText([]byte(name)); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("no key in %q", names)
	}
	return keys, nil
}

func (k *Keyboard) JustPressed(action sim.Action) bool {
	for _, key := range k.bindings[action] {
		if k.justPressed(key) {
			return true
		}
	}
	return false
}

// Keys returns the keys bound to action.
func (k *Keyboard) Keys(action sim.Action) []ebiten.Key {
	return k.bindings[action]
}

// Quit reports whether a quit key is held.
func (k *Keyboard) Quit() bool {
	for _, key := range k.quit {
		if k.pressed(key) {
			return true
		}
	}
	return false
}
