package kinit

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kerrors "github.com/winrmkit/winkrb/internal/errors"
	"github.com/winrmkit/winkrb/internal/expect"
	"github.com/winrmkit/winkrb/internal/krbconf"
)

// Candidate install locations for the Kerberos workstation tools.
var (
	defaultKinitPaths = []string{"/usr/bin/kinit", "/usr/kerberos/bin/kinit"}
	defaultKlistPaths = []string{"/usr/bin/klist", "/usr/kerberos/bin/klist"}
)

// Output markers recognized in the vendor tools' text. These are the only
// environment-dependent strings in the package.
const (
	passwordPromptMarker  = "Password for"
	passwordExpiredMarker = "Password expired"
	includeDirErrorMarker = "Included profile file could not be read while initializing krb5"
)

// Principal is a parsed user@REALM identity.
type Principal struct {
	User  string
	Realm string
}

// ParsePrincipal splits username into user and realm parts, upper-casing
// the realm. Returns ErrMalformedPrincipal unless the input is exactly
// user@realm with both parts non-empty.
func ParsePrincipal(username string) (Principal, error) {
	parts := strings.Split(username, "@")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Principal{}, kerrors.ErrMalformedPrincipal
	}
	return Principal{User: parts[0], Realm: strings.ToUpper(parts[1])}, nil
}

func (p Principal) String() string {
	return p.User + "@" + p.Realm
}

// locate returns the first candidate path that exists as a regular file.
func locate(candidates []string) string {
	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}

// Acquirer obtains Kerberos tickets by running kinit.
type Acquirer struct {
	// ConfPath is the shared krb5.conf exposed to kinit via KRB5_CONFIG.
	ConfPath string

	// SearchPaths overrides the candidate kinit locations. Empty means
	// the defaults.
	SearchPaths []string
}

// Acquire runs kinit for the principal, answering the password prompt and
// writing the resulting tickets to cachePath (its parent directory is
// created first).
//
// Returns ErrKinitNotFound when no kinit binary exists at any candidate
// path, ErrPasswordExpired when the program reports an expired password,
// and ErrTicketAcquisition wrapping the program's stderr for any other
// failure. A nil return means the cache file at cachePath holds a valid
// ticket; there is nothing else to hand back.
func (a *Acquirer) Acquire(ctx context.Context, principal Principal, password, cachePath string) error {
	paths := a.SearchPaths
	if len(paths) == 0 {
		paths = defaultKinitPaths
	}
	program := locate(paths)
	if program == "" {
		return kerrors.ErrKinitNotFound
	}

	if err := os.MkdirAll(filepath.Dir(cachePath), 0700); err != nil {
		return fmt.Errorf("creating credential cache directory: %w", err)
	}

	outcome, err := expect.Run(ctx, expect.Command{
		Path: program,
		Args: []string{principal.String()},
		Env: []string{
			krbconf.EnvKrb5Config + "=" + a.ConfPath,
			krbconf.EnvCCName + "=" + cachePath,
		},
		Rules: []expect.Rule{
			{
				// Answer the password prompt. The buffer is cleared
				// afterwards so a second, unexpected prompt is
				// detected fresh.
				Stream: expect.Stdout,
				Match: func(buffer, chunk string) bool {
					return strings.Contains(buffer, passwordPromptMarker) &&
						strings.Contains(buffer, ":")
				},
				React: func(p *expect.Process, buffer, chunk string) {
					_ = p.WriteLine(password)
				},
			},
			{
				// An expired password never recovers on its own:
				// keep only the notice line and stop waiting.
				Stream: expect.Stdout,
				Match: func(buffer, chunk string) bool {
					return strings.Contains(chunk, passwordExpiredMarker)
				},
				React: func(p *expect.Process, buffer, chunk string) {
					p.Abort(strings.SplitN(chunk, "\n", 2)[0])
				},
			},
			{
				// Anything on stderr is the fallback failure text.
				Stream: expect.Stderr,
				Match:  func(buffer, chunk string) bool { return true },
				React: func(p *expect.Process, buffer, chunk string) {
					p.Fail(buffer)
				},
				KeepBuffer: true,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("running kinit: %w", err)
	}

	if outcome.OK() {
		return nil
	}
	fragment := strings.TrimSpace(outcome.Fragment)
	if strings.Contains(fragment, passwordExpiredMarker) {
		return fmt.Errorf("%w: %s", kerrors.ErrPasswordExpired, fragment)
	}
	return fmt.Errorf("%w: %s", kerrors.ErrTicketAcquisition, fragment)
}
