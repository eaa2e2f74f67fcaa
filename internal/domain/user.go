package domain

// UnsavedUser is a user that has not been persisted yet. It carries the
// plaintext password and has no identifier; repositories assign one on Create.
type UnsavedUser struct {
	Email    string
	Password string
	Name     string
}

// User is a persisted user record. PasswordHash is never the plaintext.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
}

// Summary strips credential material from the record.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}

type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type UserCredential struct {
	Email    string
	Password string
}

// UserProfile is returned on successful login.
type UserProfile struct {
	User  UserSummary `json:"user"`
	Token string      `json:"token"`
}
