package models

import "errors"

// Sentinel errors shared by the engines. Engines return these; the
// conversation and HTTP layers translate them into user-facing text.
var (
	ErrUnknownUser      = errors.New("user is not registered")
	ErrOrderNotFound    = errors.New("order not found")
	ErrItemNotFound     = errors.New("item not found")
	ErrCategoryNotFound = errors.New("category not found")
)
