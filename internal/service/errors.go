package service

import "errors"

// Common service errors
var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails. Calculation
	// errors are joined to it so handlers can report the detail.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized is returned when credentials are missing or wrong
	ErrUnauthorized = errors.New("unauthorized")

	// ErrCalculatorNotFound is returned for an unknown calculator slug
	ErrCalculatorNotFound = errors.New("calculator not found")

	// ErrArticleNotFound is returned for an unknown article slug
	ErrArticleNotFound = errors.New("article not found")

	// ErrEstimateNotFound is returned when an estimate is missing or expired
	ErrEstimateNotFound = errors.New("estimate not found")
)
