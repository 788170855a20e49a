package domain

// Credentials map a login email to its password hash and owning user.
// One-to-one with User.
type Credentials struct {
	Email        string
	PasswordHash string // argon2id PHC encoded
	UserID       string
}
