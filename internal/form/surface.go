package form

// Display is the result region. Each call replaces whatever it showed before.
type Display interface {
	ShowLoading()
	ShowMessage(text string)
}

// Trigger is the submit control.
type Trigger interface {
	SetEnabled(enabled bool)
	SetLabel(label string)
}
