package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity or user input fails validation.
	// This is usually wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyContent is returned when required content is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrInvalidRole is returned when a chat message role is not user or model.
	ErrInvalidRole = errors.New("invalid chat role")

	// ErrInvalidAttachment is returned when an attachment has no MIME type or
	// its payload is not valid base64.
	ErrInvalidAttachment = errors.New("invalid attachment")

	// ErrInvalidDifficulty is returned when a difficulty label is not recognised.
	ErrInvalidDifficulty = errors.New("invalid difficulty")
)
