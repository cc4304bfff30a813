package app

import "errors"

// ErrInvalidCredentials covers both unknown email and wrong password.
// Callers must never learn which one it was.
var ErrInvalidCredentials = errors.New("invalid email or password")
