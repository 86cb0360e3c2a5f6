package db

import "errors"

var ErrAdminNotFound = errors.New("admin not found")
