// Package errors defines sentinel errors shared across winkrb packages.
//
// Errors are grouped by concern: preconditions (missing programs, malformed
// principals), ticket acquisition failures, and configuration problems.
// Callers distinguish outcomes with errors.Is; failure text captured from
// external programs is attached by wrapping:
//
//	fmt.Errorf("%w: %s", errors.ErrTicketAcquisition, fragment)
package errors
