package models

type Issue struct {
	ID     int
	Number int
	Title  string
	State  string
	Labels []string
	Author string
	URL    string
}

// IssueDraft is a bug report ready to submit: the rendered body plus the
// metadata carried over from the template header.
type IssueDraft struct {
	Title     string
	Body      string
	Labels    []string
	Assignees []string
}
