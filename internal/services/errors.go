// Package services implements the business logic for identity and bookings.
// This file centralizes the service-level error values so they can be
// consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer; translation
// into user-facing messages or HTTP status codes is performed at the handler
// layer. Lookups by id (user, booking) do not use sentinel errors at all: they
// report absence through a boolean or a nil pointer.
package services

import "errors"

var (
	// ErrDuplicateEmail is returned by Register when the email is already
	// taken. The match is a case-sensitive exact comparison.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrUserNotFound is returned by Login when no user has the given email.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredential is returned by Login when the stored password for
	// the email does not exactly match the supplied one.
	ErrInvalidCredential = errors.New("incorrect password")
)
