package user

// User is a full credential record as stored. PasswordHash must never
// be serialized into a client-visible response.
type User struct {
	UserID       string `json:"user_id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}

// Public is the client-safe projection of a user record.
type Public struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// Public returns the client-safe projection of u.
func (u *User) Public() Public {
	return Public{
		UserID:   u.UserID,
		Username: u.Username,
	}
}
