package workflows

import (
	"context"
	"fmt"

	"github.com/winrmkit/winkrb/internal/kinit"
	"github.com/winrmkit/winkrb/internal/krbconf"
)

// AcquireOptions configures the acquire workflow.
type AcquireOptions struct {
	// Username is the principal in user@REALM form.
	Username string

	// Password answers kinit's prompt. Never logged.
	Password string

	// KDCs is the comma-separated KDC delta for the principal's realm.
	// Empty means the realm's KDC set is left as is.
	KDCs string

	// IncludeDir, when non-empty, is registered (and validated) before
	// the merge.
	IncludeDir string
}

// AcquireResult contains the outcome of a successful acquisition.
type AcquireResult struct {
	// Principal is the canonical user@REALM identity.
	Principal string

	// Realm is the upper-cased realm the ticket was issued for.
	Realm string

	// CachePath is the per-user credential cache now holding the ticket.
	// Consumers reach it through the KRB5CCNAME convention.
	CachePath string

	// IncludeDirKept reports whether a requested include directory
	// survived validation. True when none was requested.
	IncludeDirKept bool
}

// Acquire obtains a Kerberos ticket for opts.Username.
//
// The username is validated before anything is spawned or written. Steps
// run strictly in order: include-directory registration, KDC merge, then
// kinit. A rejected include directory does not fail the call; it is
// reported through IncludeDirKept.
func Acquire(ctx context.Context, store *krbconf.Store, acquirer *kinit.Acquirer, opts AcquireOptions) (*AcquireResult, error) {
	principal, err := kinit.ParsePrincipal(opts.Username)
	if err != nil {
		return nil, err
	}

	result := &AcquireResult{
		Principal:      principal.String(),
		Realm:          principal.Realm,
		IncludeDirKept: true,
	}

	if opts.IncludeDir != "" {
		kept, err := store.RegisterIncludeDir(ctx, opts.IncludeDir)
		if err != nil {
			return nil, fmt.Errorf("registering include directory: %w", err)
		}
		result.IncludeDirKept = kept
	}

	if _, err := store.MergeKDCs(principal.Realm, krbconf.ParseDelta(opts.KDCs)); err != nil {
		return nil, fmt.Errorf("merging KDCs for %s: %w", principal.Realm, err)
	}

	cachePath, err := krbconf.CachePath(opts.Username)
	if err != nil {
		return nil, err
	}
	result.CachePath = cachePath

	if err := acquirer.Acquire(ctx, principal, opts.Password, cachePath); err != nil {
		return nil, err
	}

	return result, nil
}

// AddTrustedRealm merges a KDC delta for a realm used in cross-realm
// authentication, without acquiring a ticket for it.
func AddTrustedRealm(store *krbconf.Store, realm, kdcs string) (bool, error) {
	changed, err := store.MergeKDCs(realm, krbconf.ParseDelta(kdcs))
	if err != nil {
		return false, fmt.Errorf("merging KDCs for trusted realm %s: %w", realm, err)
	}
	return changed, nil
}
