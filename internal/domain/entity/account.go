package entity

// Account is a backend user record with its password hash
type Account struct {
	ID           string
	Name         string
	Email        string
	Role         Role
	PasswordHash []byte
}
