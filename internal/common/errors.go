package common

import "errors"

// ErrNotLoggedIn is returned by commands that need an authenticated session.
var ErrNotLoggedIn = errors.New("not logged in")
