package bot

import "testing"

func TestMainMenuForUser(t *testing.T) {
	markup := mainMenu(false)

	want := []string{"apply", "about", "rules"}
	if len(markup.InlineKeyboard) != len(want) {
		t.Fatalf("rows = %d, want %d", len(markup.InlineKeyboard), len(want))
	}
	for i, unique := range want {
		if got := markup.InlineKeyboard[i][0].Unique; got != unique {
			t.Errorf("row %d unique = %q, want %q", i, got, unique)
		}
	}
}

func TestMainMenuForOrganizerAddsAdminRow(t *testing.T) {
	markup := mainMenu(true)

	if len(markup.InlineKeyboard) != 4 {
		t.Fatalf("rows = %d, want 4", len(markup.InlineKeyboard))
	}
	if got := markup.InlineKeyboard[3][0].Unique; got != "admin_menu" {
		t.Errorf("last row unique = %q, want admin_menu", got)
	}
}
