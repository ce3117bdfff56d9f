package entities

import "time"

// Role is the role a chat is logged in with.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin" // lecturer
)

// Account links a Telegram chat to an identity of the remote quiz service.
type Account struct {
	ChatID    int64     // Telegram chat ID
	Role      Role      // student or admin
	RemoteID  string    // user_id for students, lecturer_id for admins
	Name      string    // display name returned by the login endpoint
	CreatedAt time.Time // first login of this chat
	UpdatedAt time.Time // last login of this chat
}

// NewAccount creates an account link for a freshly logged-in chat.
func NewAccount(chatID int64, role Role, remoteID, name string) *Account {
	now := time.Now()
	return &Account{
		ChatID:    chatID,
		Role:      role,
		RemoteID:  remoteID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (a *Account) IsAdmin() bool {
	return a != nil && a.Role == RoleAdmin
}

func (a *Account) IsStudent() bool {
	return a != nil && a.Role == RoleStudent
}
