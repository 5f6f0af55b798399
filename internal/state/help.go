package state

// HelpOverlay lists the key bindings. Keys it does not close on fall through
// to the focused panel.
type HelpOverlay struct{}

// HelpView is the render state of a HelpOverlay
type HelpView struct{}

func (*HelpOverlay) isModal() {}

// HandleKey closes the overlay
func (h *HelpOverlay) HandleKey(key string) Outcome {
	switch key {
	case "esc", "q", "h", "?", "enter":
		return cancelled()
	}
	return unhandled()
}

// View returns the render state
func (h *HelpOverlay) View() ModalView {
	return HelpView{}
}
