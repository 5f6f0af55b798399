package state

import (
	"regexp"
	"unicode"
	"unicode/utf8"
)

var identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateTableName accepts names usable as an unquoted SQL identifier
func ValidateTableName(name string) error {
	switch {
	case name == "":
		return &ValidationError{Field: "table name", Reason: "must not be empty"}
	case !identifierRe.MatchString(name):
		return &ValidationError{Field: "table name", Reason: "use letters, digits and underscores, not starting with a digit"}
	}
	return nil
}

// TextPrompt is a single-line input. Only Esc cancels, so every printable
// key, including q, can be typed.
type TextPrompt struct {
	title    string
	label    string
	value    []rune
	err      error
	validate func(string) error
}

// PromptView is the render state of a TextPrompt
type PromptView struct {
	Title string
	Label string
	Value string
	Err   string
}

// NewTextPrompt returns an empty prompt; validate may be nil
func NewTextPrompt(title, label string, validate func(string) error) *TextPrompt {
	return &TextPrompt{title: title, label: label, validate: validate}
}

func (*TextPrompt) isModal() {}

// Value returns the current input
func (p *TextPrompt) Value() string {
	return string(p.value)
}

// Err returns the last validation error
func (p *TextPrompt) Err() error {
	return p.err
}

// HandleKey edits the input. Enter pops with the value once it validates.
func (p *TextPrompt) HandleKey(key string) Outcome {
	switch key {
	case "esc":
		return cancelled()
	case "enter":
		value := string(p.value)
		if p.validate != nil {
			if err := p.validate(value); err != nil {
				p.err = err
				return handled()
			}
		}
		return popWith(PopResult{Text: value})
	case "backspace":
		if len(p.value) > 0 {
			p.value = p.value[:len(p.value)-1]
		}
	case "ctrl+u":
		p.value = nil
	case "space":
		p.value = append(p.value, ' ')
	default:
		if r, size := utf8.DecodeRuneInString(key); size > 0 && size == len(key) && unicode.IsPrint(r) {
			p.value = append(p.value, r)
		}
	}
	p.err = nil
	return handled()
}

// View returns the render state
func (p *TextPrompt) View() ModalView {
	v := PromptView{Title: p.title, Label: p.label, Value: string(p.value)}
	if p.err != nil {
		v.Err = p.err.Error()
	}
	return v
}
