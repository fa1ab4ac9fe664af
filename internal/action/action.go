// Package action decodes raw callback tokens into typed actions. Tokens are
// decoded once at the transport boundary; workflow code only ever sees an
// Action value.
package action

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind enumerates every callback action the bot understands.
type Kind int

const (
	Unknown Kind = iota

	MainMenu
	Apply
	About
	Rules
	SecondBlockYes
	SecondBlockNo
	CancelApplication

	AdminMenu
	AdminPending
	AdminApprovedPoems
	AdminSecondBlock
	AdminDeleteAll
	AdminRules
	AdminAbout
	AdminBlacklist
	AdminBroadcast

	BlacklistAdd
	BlacklistRemove
	BlacklistView
	BlacklistPage

	Approve
	Reject
	Navigate

	ConfirmDeleteAll
	CancelDeleteAll
	CancelEdit
	Noop
)

// Action is a decoded callback with its typed payload. ID carries an
// application id for Approve/Reject; Index carries a queue position for
// Navigate; Page carries a page number for BlacklistPage.
type Action struct {
	Kind  Kind
	ID    int64
	Index int
	Page  int
}

var simpleTokens = map[string]Kind{
	"main_menu":                  MainMenu,
	"apply":                      Apply,
	"about":                      About,
	"rules":                      Rules,
	"second_block_yes":           SecondBlockYes,
	"second_block_no":            SecondBlockNo,
	"cancel_application":         CancelApplication,
	"admin_menu":                 AdminMenu,
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

// Decode parses a raw callback token. Unknown or malformed tokens are errors.
func Decode(data string) (Action, error) {
	token := strings.TrimSpace(strings.TrimPrefix(data, "\f"))
	if token == "" {
		return Action{}, fmt.Errorf("empty callback token")
	}

	if kind, ok := simpleTokens[token]; ok {
		return Action{Kind: kind}, nil
	}

	switch {
	case strings.HasPrefix(token, "approve_"):
		id, err := parseID(strings.TrimPrefix(token, "approve_"))
		if err != nil {
			return Action{}, fmt.Errorf("approve token %q: %w", token, err)
		}
		return Action{Kind: Approve, ID: id}, nil
	case strings.HasPrefix(token, "reject_"):
		id, err := parseID(strings.TrimPrefix(token, "reject_"))
		if err != nil {
			return Action{}, fmt.Errorf("reject token %q: %w", token, err)
		}
		return Action{Kind: Reject, ID: id}, nil
	case strings.HasPrefix(token, "nav_"):
		index, err := strconv.Atoi(strings.TrimPrefix(token, "nav_"))
		if err != nil || index < 0 {
			return Action{}, fmt.Errorf("nav token %q: bad index", token)
		}
		return Action{Kind: Navigate, Index: index}, nil
	case strings.HasPrefix(token, "blacklist_page_"):
		page, err := strconv.Atoi(strings.TrimPrefix(token, "blacklist_page_"))
		if err != nil || page < 0 {
			return Action{}, fmt.Errorf("blacklist page token %q: bad page", token)
		}
		return Action{Kind: BlacklistPage, Page: page}, nil
	}

	return Action{}, fmt.Errorf("unknown callback token %q", token)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("bad id %q", raw)
	}
	return id, nil
}

// ApproveToken renders the callback token for approving an application.
func ApproveToken(id int64) string { return fmt.Sprintf("approve_%d", id) }

// RejectToken renders the callback token for rejecting an application.
func RejectToken(id int64) string { return fmt.Sprintf("reject_%d", id) }

// NavToken renders the callback token for navigating to a queue index.
func NavToken(index int) string { return fmt.Sprintf("nav_%d", index) }

// BlacklistPageToken renders the callback token for a blacklist page.
func BlacklistPageToken(page int) string { return fmt.Sprintf("blacklist_page_%d", page) }
