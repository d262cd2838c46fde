package model

import "errors"

// Common errors used across the application
var (
	// Credential errors
	ErrInvalidCredential = errors.New("username and password must be 4-20 alphanumeric characters")
	ErrUnknownUser       = errors.New("unknown user")
	ErrWrongPassword     = errors.New("wrong password")
	ErrUsernameTaken     = errors.New("username already taken")
	ErrAlreadyLoggedIn   = errors.New("user already logged in")

	// Game errors
	ErrAlreadyPlayed = errors.New("current word already played, wait for the next rotation")
	ErrWordNotFound  = errors.New("word not in dictionary")

	// Rotation errors
	ErrDictionaryExhausted = errors.New("every dictionary word has been used")

	// Persistence errors
	ErrNoSnapshot = errors.New("no saved snapshot")

	// Protocol errors
	ErrMalformedRequest = errors.New("malformed request")
)
