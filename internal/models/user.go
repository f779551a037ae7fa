package models

import "gorm.io/gorm"

// User is an API account. Role decides what the token may do:
// "viewer" reads vessel data, "feed" may push ingestion batches,
// "admin" can do both.
type User struct {
	gorm.Model
	Name     string `json:"name"`
	Email    string `json:"email" gorm:"unique"`
	Password string `json:"-"`
	Role     string `json:"role"`
}
