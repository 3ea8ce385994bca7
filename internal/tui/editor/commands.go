package editor

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/deckforge/deckforge/internal/model"
)

const saveTimeout = 5 * time.Second

// saveSlideCmd persists the slide asynchronously
func saveSlideCmd(saver Saver, deckID string, doc model.Document) tea.Cmd {
	return func() tea.Msg {
		if saver == nil {
			return SaveErrorMsg{Error: errNoSaver}
		}
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()

		if err := saver.SaveSlide(ctx, deckID, doc); err != nil {
			return SaveErrorMsg{Error: err}
		}
		return SlideSavedMsg{SlideID: doc.ID}
	}
}

var errNoSaver = noSaverError{}

type noSaverError struct{}

func (noSaverError) Error() string { return "no slide store configured" }
