// Package kinit drives the MIT Kerberos command-line tools.
//
// Acquirer runs kinit to turn a user@REALM principal and password into a
// per-user credential cache, answering the password prompt and recognizing
// the password-expiry notice in the program's output. Validator runs klist
// as a read-only diagnostic to decide whether a freshly added include
// directory left the configuration readable.
//
// Both are thin rule sets over the expect package; neither implements any
// Kerberos protocol itself.
package kinit
