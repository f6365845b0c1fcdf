package errors

import "errors"

// Precondition errors indicate a call cannot proceed at all; nothing is
// spawned and no configuration is written past what already completed.
var (
	// ErrKinitNotFound indicates the ticket-granting program is not installed.
	ErrKinitNotFound = errors.New("kinit not found: krb5-workstation is not installed")

	// ErrMalformedPrincipal indicates the username is not in user@REALM form.
	ErrMalformedPrincipal = errors.New("kerberos username must be in user@domain format")
)

// Acquisition errors indicate the ticket-granting program ran but failed.
var (
	// ErrTicketAcquisition indicates kinit reported a failure on its error stream.
	ErrTicketAcquisition = errors.New("ticket acquisition failed")

	// ErrPasswordExpired indicates kinit reported the password as expired.
	// Callers may prompt for a new password instead of retrying verbatim.
	ErrPasswordExpired = errors.New("password expired")
)

// Configuration errors indicate issues with the shared krb5.conf.
var (
	// ErrNoCachePath indicates no credential cache location could be derived
	// for the user (no product home and no home directory).
	ErrNoCachePath = errors.New("no credential cache path available")
)
