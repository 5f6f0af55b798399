package state

import "fmt"

// MaxModalDepth bounds the modal stack
const MaxModalDepth = 3

// ModalStack holds the active modals, innermost last
type ModalStack struct {
	modals []Modal
}

// Push adds m on top. Pushing past MaxModalDepth is refused.
func (s *ModalStack) Push(m Modal) error {
	if len(s.modals) >= MaxModalDepth {
		return &InternalInvariantError{What: fmt.Sprintf("modal stack overflow (depth %d)", len(s.modals))}
	}
	s.modals = append(s.modals, m)
	return nil
}

// Pop removes and returns the top modal, nil if the stack is empty
func (s *ModalStack) Pop() Modal {
	if len(s.modals) == 0 {
		return nil
	}
	top := s.modals[len(s.modals)-1]
	s.modals[len(s.modals)-1] = nil
	s.modals = s.modals[:len(s.modals)-1]
	return top
}

// Top returns the modal receiving input, nil if none
func (s *ModalStack) Top() Modal {
	if len(s.modals) == 0 {
		return nil
	}
	return s.modals[len(s.modals)-1]
}

// Len returns the stack depth
func (s *ModalStack) Len() int {
	return len(s.modals)
}

// IsEmpty returns true if no modal is open
func (s *ModalStack) IsEmpty() bool {
	return len(s.modals) == 0
}

// Views returns the render state of every modal, bottom first
func (s *ModalStack) Views() []ModalView {
	views := make([]ModalView, len(s.modals))
	for i, m := range s.modals {
		views[i] = m.View()
	}
	return views
}
