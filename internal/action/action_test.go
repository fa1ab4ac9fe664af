package action

import "testing"

func TestDecodeSimpleTokens(t *testing.T) {
	cases := map[string]Kind{
		"apply":                      Apply,
		"about":                      About,
		"rules":                      Rules,
		"main_menu":                  MainMenu,
		"admin_menu":                 AdminMenu,
		"second_block_yes":           SecondBlockYes,
		"second_block_no":            SecondBlockNo,
		"cancel_application":         CancelApplication,
		"admin_pending_applications": AdminPending,
		"admin_approved_poems":       AdminApprovedPoems,
		"admin_second_block":         AdminSecondBlock,
		"admin_delete_all":           AdminDeleteAll,
		"admin_rules":                AdminRules,
		"admin_about":                AdminAbout,
		"admin_blacklist":            AdminBlacklist,
		"admin_broadcast":            AdminBroadcast,
		"blacklist_add":              BlacklistAdd,
		"blacklist_remove":           BlacklistRemove,
		"blacklist_view":             BlacklistView,
		"confirm_delete_all":         ConfirmDeleteAll,
		"cancel_delete_all":          CancelDeleteAll,
		"cancel_edit":                CancelEdit,
		"noop":                       Noop,
	}
	for token, want := range cases {
		act, err := Decode(token)
		if err != nil {
			t.Errorf("Decode(%q) error: %v", token, err)
			continue
		}
		if act.Kind != want {
			t.Errorf("Decode(%q).Kind = %v, want %v", token, act.Kind, want)
		}
	}
}

func TestDecodePayloadTokens(t *testing.T) {
	act, err := Decode("approve_12")
	if err != nil || act.Kind != Approve || act.ID != 12 {
		t.Fatalf("Decode(approve_12) = %+v, %v", act, err)
	}
	act, err = Decode("reject_345")
	if err != nil || act.Kind != Reject || act.ID != 345 {
		t.Fatalf("Decode(reject_345) = %+v, %v", act, err)
	}
	act, err = Decode("nav_0")
	if err != nil || act.Kind != Navigate || act.Index != 0 {
		t.Fatalf("Decode(nav_0) = %+v, %v", act, err)
	}
	act, err = Decode("blacklist_page_3")
	if err != nil || act.Kind != BlacklistPage || act.Page != 3 {
		t.Fatalf("Decode(blacklist_page_3) = %+v, %v", act, err)
	}
}

func TestDecodeStripsTelebotPrefix(t *testing.T) {
	act, err := Decode("\fapply")
	if err != nil || act.Kind != Apply {
		t.Fatalf("Decode(\\fapply) = %+v, %v", act, err)
	}
}

func TestDecodeMalformed(t *testing.T) {
	for _, token := range []string{
		"",
		"approve_",
		"approve_abc",
		"approve_-5",
		"reject_0",
		"nav_-1",
		"nav_x",
		"blacklist_page_",
		"something_else",
	} {
		if _, err := Decode(token); err == nil {
			t.Errorf("Decode(%q) succeeded, want error", token)
		}
	}
}

func TestTokenRoundTrip(t *testing.T) {
	act, err := Decode(ApproveToken(7))
	if err != nil || act.Kind != Approve || act.ID != 7 {
		t.Fatalf("round trip approve: %+v, %v", act, err)
	}
	act, err = Decode(NavToken(4))
	if err != nil || act.Kind != Navigate || act.Index != 4 {
		t.Fatalf("round trip nav: %+v, %v", act, err)
	}
	act, err = Decode(BlacklistPageToken(2))
	if err != nil || act.Kind != BlacklistPage || act.Page != 2 {
		t.Fatalf("round trip page: %+v, %v", act, err)
	}
}
