package state

// StatusKind classifies a status line message
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusError
)

// Status is the transient message shown in the status line; the next one
// replaces it
type Status struct {
	Kind StatusKind
	Text string
}

func infoStatus(text string) *Status {
	return &Status{Kind: StatusInfo, Text: text}
}

func errorStatus(err error) *Status {
	return &Status{Kind: StatusError, Text: err.Error()}
}
