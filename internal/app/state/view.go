package state

// ViewState holds UI-only state that is never persisted.
type ViewState struct {
	ShowingFilter bool
	ShowingHelp   bool
	Notice        string
	WindowWidth   int
	WindowHeight  int
}

// ModalOpen reports whether a modal currently captures the keyboard.
func (v ViewState) ModalOpen() bool {
	return v.ShowingHelp
}
