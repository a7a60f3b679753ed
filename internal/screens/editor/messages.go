package editor

// SavedMsg is emitted after a successful save, once the editor has been
// popped. The session screen reconciles the current card on receipt.
type SavedMsg struct {
	TopicID  string
	Position int
}

// DeletedMsg is emitted after a successful delete, once the editor has been
// popped.
type DeletedMsg struct {
	TopicID  string
	Position int
}

// saveDoneMsg reports the result of the save call.
type saveDoneMsg struct {
	Err error
}

// deleteDoneMsg reports the result of the delete call.
type deleteDoneMsg struct {
	Err error
}
