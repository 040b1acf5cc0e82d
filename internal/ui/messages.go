package ui

// previewLoadedMsg carries a rendered preview of an item
type previewLoadedMsg struct {
	key     previewKey
	content string
	err     error
}

// errorMsg represents any error that occurred during UI operations
type errorMsg struct {
	err error
}

func (e errorMsg) Error() string { return e.err.Error() }
