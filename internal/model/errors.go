package model

import "errors"

// MaxPasswordBytes 為 bcrypt 可接受的密碼長度上限 (bytes)
const MaxPasswordBytes = 72

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUserExists      = errors.New("user already exists")
	ErrPasswordTooLong = errors.New("password must be at most 72 bytes")
)
