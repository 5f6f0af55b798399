package ui

import (
	overlay "github.com/rmhubbert/bubbletea-overlay"
)

// PopupStack collects rendered popups, bottom first, so that nested modals
// are drawn over the ones that opened them
type PopupStack struct {
	layers []string
}

// Push adds a rendered popup on top
func (s *PopupStack) Push(view string) {
	if view == "" {
		return
	}
	s.layers = append(s.layers, view)
}

// Composite draws every popup centered over main, bottom first
func (s *PopupStack) Composite(main string) string {
	for _, layer := range s.layers {
		main = overlay.Composite(layer, main, overlay.Center, overlay.Center, 0, 0)
	}
	return main
}
