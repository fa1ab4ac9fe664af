package store

import "time"

// Application status values. Transitions only leave StatusPending.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// ValidTransition reports whether an application status change is allowed.
// Statuses only ever leave pending, and nothing moves back to it.
func ValidTransition(from, to string) bool {
	if from != StatusPending {
		return false
	}
	return to == StatusApproved || to == StatusRejected
}

// Content keys form a closed set seeded by the initial migration.
const (
	ContentRules = "rules"
	ContentAbout = "about_organizer"
)

// User is a Telegram user known to the bot.
type User struct {
	UserID    int64     `db:"user_id"`
	Username  *string   `db:"username"`
	FirstName string    `db:"first_name"`
	LastName  *string   `db:"last_name"`
	CreatedAt time.Time `db:"created_at"`
}

// DisplayName renders first and last name as a single string.
func (u *User) DisplayName() string {
	if u.LastName != nil && *u.LastName != "" {
		return u.FirstName + " " + *u.LastName
	}
	return u.FirstName
}

// Handle returns the @username or a placeholder when the user has none.
func (u *User) Handle() string {
	if u.Username != nil && *u.Username != "" {
		return "@" + *u.Username
	}
	return "без username"
}

// Application is a poem submission together with author info joined from users.
type Application struct {
	ApplicationID int64     `db:"application_id"`
	UserID        int64     `db:"user_id"`
	PoemText      string    `db:"poem_text"`
	SecondBlock   bool      `db:"second_block"`
	Status        string    `db:"status"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`

	// Author fields are filled from a LEFT JOIN with placeholder defaults,
	// so an application survives its user row going missing.
	Username  string `db:"username"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
}

// AuthorName renders the author's first and last name.
func (a *Application) AuthorName() string {
	if a.LastName != "" {
		return a.FirstName + " " + a.LastName
	}
	return a.FirstName
}

// AuthorHandle returns the author's @username or a placeholder.
func (a *Application) AuthorHandle() string {
	if a.Username != "" && a.Username != "неизвестно" {
		return "@" + a.Username
	}
	return "@нет"
}
