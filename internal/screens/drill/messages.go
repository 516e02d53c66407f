package drill

// drillStartedMsg is sent when session start or resume has finished.
type drillStartedMsg struct {
	Err error
}

// coachNoteMsg delivers an asynchronously generated coach note.
type coachNoteMsg struct {
	ItemID string
	Note   string
	Err    error
}
