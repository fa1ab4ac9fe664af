// Package export renders plain-text documents with the event lineup for the
// organizer: the approved poems of the first block and the list of speakers
// who opted into the second block.
package export

import (
	"errors"
	"fmt"
	"strings"

	"github.com/m3rciful/poetbot/internal/store"
)

// ErrNoData is returned when there is nothing to export.
var ErrNoData = errors.New("export: no data")

// Document is an in-memory text file ready to be sent to the organizer.
type Document struct {
	Name string
	Data []byte
}

const secondBlockPoemPreview = 100

// ApprovedPoems renders the full text of every approved poem with author
// attribution and second-block participation.
func ApprovedPoems(apps []store.Application) (*Document, error) {
	if len(apps) == 0 {
		return nil, ErrNoData
	}

	var b strings.Builder
	b.WriteString("Стихи первого блока:\n\n")
	for i, app := range apps {
		secondBlock := "Нет"
		if app.SecondBlock {
			secondBlock = "Да"
		}
		fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, app.AuthorName(), app.AuthorHandle())
		fmt.Fprintf(&b, "ID заявки: %d\n", app.ApplicationID)
		fmt.Fprintf(&b, "Участие во втором блоке: %s\n", secondBlock)
		fmt.Fprintf(&b, "Стих:\n%s\n", app.PoemText)
		b.WriteString(strings.Repeat("=", 50) + "\n\n")
	}

	return &Document{
		Name: "стихи_первого_блока.txt",
		Data: []byte(b.String()),
	}, nil
}

// SecondBlockSpeakers renders the second-block lineup with a short preview of
// each speaker's poem.
func SecondBlockSpeakers(apps []store.Application) (*Document, error) {
	if len(apps) == 0 {
		return nil, ErrNoData
	}

	var b strings.Builder
	b.WriteString("Список выступающих второго блока:\n\n")
	for i, app := range apps {
		fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, app.AuthorName(), app.AuthorHandle())
		fmt.Fprintf(&b, "ID заявки: %d\n", app.ApplicationID)
		fmt.Fprintf(&b, "Стих: %s\n", Truncate(app.PoemText, secondBlockPoemPreview))
		b.WriteString(strings.Repeat("-", 30) + "\n")
	}

	return &Document{
		Name: "список_второго_блока.txt",
		Data: []byte(b.String()),
	}, nil
}

// Truncate cuts text to at most limit runes, appending an ellipsis when
// anything was cut. Counting runes keeps Cyrillic text from being split
// mid-character.
func Truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
