package models

// Admin is the single configured back-office account. The password is kept
// only as a bcrypt hash once the process has started.
type Admin struct {
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}
