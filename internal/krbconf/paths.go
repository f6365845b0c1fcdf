package krbconf

import (
	"os"
	"path/filepath"

	kerrors "github.com/winrmkit/winkrb/internal/errors"
)

// Environment variables forming the path contract with Kerberos tools.
const (
	// EnvKrb5Config points Kerberos libraries and tools at the managed
	// configuration file.
	EnvKrb5Config = "KRB5_CONFIG"

	// EnvCCName points kinit at the per-user credential cache.
	EnvCCName = "KRB5CCNAME"

	// EnvProductHome is the product-specific home directory variable.
	EnvProductHome = "WINKRB_HOME"
)

// DefaultPath returns the path to krb5.conf.
//
// Order of preference:
//  1. $KRB5_CONFIG
//  2. $WINKRB_HOME/var/krb5.conf
//  3. $HOME/.winkrb/krb5.conf
//  4. /etc/krb5.conf
func DefaultPath() string {
	if path := os.Getenv(EnvKrb5Config); path != "" {
		return path
	}

	if home := os.Getenv(EnvProductHome); home != "" {
		return filepath.Join(home, "var", "krb5.conf")
	}

	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, ".winkrb", "krb5.conf")
	}

	return filepath.Join("/etc", "krb5.conf")
}

// CachePath returns the credential cache path for username.
//
// Each username gets a separate cache because kinit destroys all previous
// credentials when a new one is initialized; sharing one cache would let
// one user's acquisition invalidate another's tickets.
func CachePath(username string) (string, error) {
	if home := os.Getenv(EnvProductHome); home != "" {
		return filepath.Join(home, "var", "krb5cc", username), nil
	}

	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, ".winkrb", "krb5cc", username), nil
	}

	return "", kerrors.ErrNoCachePath
}
