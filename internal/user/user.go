package user

import "errors"

// ErrNotFound is returned when a user is not found.
var ErrNotFound = errors.New("user not found")

// ErrAlreadyExists is returned when a username is already taken.
var ErrAlreadyExists = errors.New("username already exists")

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
}
