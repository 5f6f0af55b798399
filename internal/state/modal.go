package state

// Modal is an interactive context layered over the panels. Only the top of
// the stack receives keys. The set of modals is closed: *ImportWizard,
// *TextPrompt, *FileBrowser, *Confirmation and *HelpOverlay.
type Modal interface {
	// HandleKey reacts to a key and reports what the controller must do next
	HandleKey(key string) Outcome
	// View returns a read-only copy of the render state
	View() ModalView
	isModal()
}

// OutcomeKind is the answer of a modal to a key or event
type OutcomeKind int

const (
	// Handled means the modal consumed the input
	Handled OutcomeKind = iota
	// Unhandled passes the key on to the focused panel
	Unhandled
	// Pop removes the modal and hands Result to the modal below
	Pop
)

// Outcome is the result of offering a key or event to a modal
type Outcome struct {
	Kind     OutcomeKind
	Result   PopResult
	Push     Modal
	Commands []Command
	Status   *Status
}

// PopResult is what a popped modal leaves for the one that pushed it
type PopResult struct {
	From      Modal
	Cancelled bool
	Text      string
	Path      string
	Confirmed bool
}

func handled(cmds ...Command) Outcome {
	return Outcome{Kind: Handled, Commands: cmds}
}

func unhandled() Outcome {
	return Outcome{Kind: Unhandled}
}

func popWith(res PopResult) Outcome {
	return Outcome{Kind: Pop, Result: res}
}

func cancelled() Outcome {
	return popWith(PopResult{Cancelled: true})
}

// ModalView is the render state of a modal; the concrete types are
// ImportView, PromptView, BrowserView, ConfirmView and HelpView
type ModalView interface {
	isModalView()
}

func (ImportView) isModalView()  {}
func (PromptView) isModalView()  {}
func (BrowserView) isModalView() {}
func (ConfirmView) isModalView() {}
func (HelpView) isModalView()    {}
