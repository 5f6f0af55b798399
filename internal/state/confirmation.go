package state

// ConfirmPurpose names the action a Confirmation guards
type ConfirmPurpose int

const (
	ConfirmDisconnect ConfirmPurpose = iota
	ConfirmDropTable
)

// Confirmation is a yes/no question about target on connection connID
type Confirmation struct {
	purpose ConfirmPurpose
	connID  string
	target  string
	message string
}

// ConfirmView is the render state of a Confirmation
type ConfirmView struct {
	Message string
}

// NewConfirmation asks message about target
func NewConfirmation(purpose ConfirmPurpose, connID, target, message string) *Confirmation {
	return &Confirmation{purpose: purpose, connID: connID, target: target, message: message}
}

func (*Confirmation) isModal() {}

// Purpose returns what is being confirmed
func (c *Confirmation) Purpose() ConfirmPurpose {
	return c.purpose
}

// ConnID returns the connection the question is about
func (c *Confirmation) ConnID() string {
	return c.connID
}

// Target returns the subject of the question: the connection id or a table
func (c *Confirmation) Target() string {
	return c.target
}

// HandleKey answers the question with y/Enter or n/q/Esc
func (c *Confirmation) HandleKey(key string) Outcome {
	switch key {
	case "y", "Y", "enter":
		return popWith(PopResult{Confirmed: true})
	case "n", "N", "q", "esc":
		return cancelled()
	}
	return handled()
}

// View returns the render state
func (c *Confirmation) View() ModalView {
	return ConfirmView{Message: c.message}
}
