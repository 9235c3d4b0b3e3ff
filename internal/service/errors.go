package service

import "errors"

var (
	// ErrInvalidDateRange is returned when the end of a date range precedes
	// its start. It is a precondition violation, not a retryable state.
	ErrInvalidDateRange = errors.New("end date precedes start date")

	// ErrForbidden is returned when a user operates on a row owned by
	// someone else.
	ErrForbidden = errors.New("not the owner of this resource")

	// ErrNameTaken is returned when a unique display name already exists.
	ErrNameTaken = errors.New("name already in use")

	// ErrZeroServings is returned when per-serving nutrition would divide
	// by zero. Recipes enforce servings >= 1 at creation, so this marks a
	// corrupted row.
	ErrZeroServings = errors.New("recipe has zero servings")
)
