package domain

import "errors"

var (
	ErrUnknownCollection = errors.New("unknown collection")
	ErrUnknownMode       = errors.New("unknown mode")
	ErrUnknownView       = errors.New("unknown view")
	ErrInvalidTime       = errors.New("invalid time of day")
	ErrInvalidDay        = errors.New("invalid day")
	ErrEmptyTitle        = errors.New("title is required")
	ErrFieldNotAllowed   = errors.New("field not allowed for collection")
	ErrResetNotConfirmed = errors.New("reset requires confirmation")
)
