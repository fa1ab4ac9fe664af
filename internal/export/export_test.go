package export

import (
	"errors"
	"strings"
	"testing"

	"github.com/m3rciful/poetbot/internal/store"
)

func sampleApps() []store.Application {
	return []store.Application{
		{
			ApplicationID: 7,
			PoemText:      "Мороз и солнце; день чудесный!",
			SecondBlock:   true,
			FirstName:     "Анна",
			LastName:      "Иванова",
			Username:      "anna",
		},
		{
			ApplicationID: 9,
			PoemText:      "Белеет парус одинокой",
			SecondBlock:   false,
			FirstName:     "Пётр",
			LastName:      "",
			Username:      "неизвестно",
		},
	}
}

func TestApprovedPoemsDocument(t *testing.T) {
	doc, err := ApprovedPoems(sampleApps())
	if err != nil {
		t.Fatalf("ApprovedPoems: %v", err)
	}
	if doc.Name != "стихи_первого_блока.txt" {
		t.Fatalf("name = %q", doc.Name)
	}

	text := string(doc.Data)
	for _, want := range []string{
		"Стихи первого блока:",
		"1. Анна Иванова (@anna)",
		"ID заявки: 7",
		"Участие во втором блоке: Да",
		"Мороз и солнце; день чудесный!",
		"2. Пётр (@нет)",
		"Участие во втором блоке: Нет",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("document missing %q", want)
		}
	}
}

func TestSecondBlockSpeakersDocument(t *testing.T) {
	apps := sampleApps()
	apps[0].PoemText = strings.Repeat("я", 150)

	doc, err := SecondBlockSpeakers(apps)
	if err != nil {
		t.Fatalf("SecondBlockSpeakers: %v", err)
	}
	if doc.Name != "список_второго_блока.txt" {
		t.Fatalf("name = %q", doc.Name)
	}

	text := string(doc.Data)
	if !strings.Contains(text, "Список выступающих второго блока:") {
		t.Error("missing header")
	}
	if !strings.Contains(text, strings.Repeat("я", 100)+"...") {
		t.Error("long poem not truncated to 100 runes")
	}
	if strings.Contains(text, strings.Repeat("я", 101)) {
		t.Error("preview longer than 100 runes")
	}
}

func TestExportNoData(t *testing.T) {
	if _, err := ApprovedPoems(nil); !errors.Is(err, ErrNoData) {
		t.Fatalf("ApprovedPoems(nil) err = %v, want ErrNoData", err)
	}
	if _, err := SecondBlockSpeakers([]store.Application{}); !errors.Is(err, ErrNoData) {
		t.Fatalf("SecondBlockSpeakers(empty) err = %v, want ErrNoData", err)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("короткий", 100); got != "короткий" {
		t.Fatalf("short text changed: %q", got)
	}
	if got := Truncate("абвгд", 5); got != "абвгд" {
		t.Fatalf("exact limit changed: %q", got)
	}
	if got := Truncate("абвгде", 5); got != "абвгд..." {
		t.Fatalf("Truncate = %q", got)
	}
}
