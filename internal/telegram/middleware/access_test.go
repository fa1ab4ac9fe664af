package middleware

import (
	"testing"

	tele "gopkg.in/telebot.v4"
)

// senderCtx overrides only the method the access middleware consults.
type senderCtx struct {
	tele.Context
	sender *tele.User
}

func (c *senderCtx) Sender() *tele.User { return c.sender }

func TestAdminOnlyMiddlewarePassesAdmin(t *testing.T) {
	called := false
	mw := AdminOnlyMiddleware(AdminOptions{AdminID: 42})
	handler := mw(func(tele.Context) error {
		called = true
		return nil
	})

	if err := handler(&senderCtx{sender: &tele.User{ID: 42}}); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if !called {
		t.Fatal("admin was not passed through")
	}
}

func TestAdminOnlyMiddlewareRejectsOthers(t *testing.T) {
	rejected := false
	mw := AdminOnlyMiddleware(AdminOptions{
		AdminID: 42,
		OnReject: func(tele.Context) error {
			rejected = true
			return nil
		},
	})
	handler := mw(func(tele.Context) error {
		t.Fatal("non-admin reached the handler")
		return nil
	})

	if err := handler(&senderCtx{sender: &tele.User{ID: 7}}); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if !rejected {
		t.Fatal("OnReject was not invoked")
	}
}

func TestAdminOnlyMiddlewareSilentWithoutOnReject(t *testing.T) {
	mw := AdminOnlyMiddleware(AdminOptions{AdminID: 42})
	handler := mw(func(tele.Context) error {
		t.Fatal("non-admin reached the handler")
		return nil
	})

	if err := handler(&senderCtx{sender: &tele.User{ID: 7}}); err != nil {
		t.Fatalf("handler: %v", err)
	}
}

func TestAdminOnlyMiddlewareZeroIDDisablesCheck(t *testing.T) {
	called := false
	mw := AdminOnlyMiddleware(AdminOptions{})
	handler := mw(func(tele.Context) error {
		called = true
		return nil
	})

	if err := handler(&senderCtx{sender: &tele.User{ID: 7}}); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if !called {
		t.Fatal("check should be disabled when no admin id is configured")
	}
}
