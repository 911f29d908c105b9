package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap defines the only binding with an effect: stopping the animation.
// Every other key is drained and ignored.
type keyMap struct {
	Interrupt key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Interrupt: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "stop"),
		),
	}
}
