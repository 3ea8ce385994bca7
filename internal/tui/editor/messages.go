package editor

// ViewMode determines which screen to render
type ViewMode int

const (
	ViewCanvas ViewMode = iota
	ViewPalette
	ViewHelp
	ViewConfirmDelete
	ViewEditText
)

// SlideSavedMsg indicates the slide was written to the store
type SlideSavedMsg struct {
	SlideID string
}

// SaveErrorMsg indicates the save failed
type SaveErrorMsg struct {
	Error error
}

// ErrorMsg indicates a general error occurred
type ErrorMsg struct {
	Message string
}

// ClearErrorMsg requests error banner dismissal
type ClearErrorMsg struct{}
