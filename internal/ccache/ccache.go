package ccache

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jcmturner/gokrb5/v8/credentials"
)

// Entry is one service ticket held in a credential cache.
type Entry struct {
	ServicePrincipal string
	AuthTime         time.Time
	EndTime          time.Time
}

// Expired reports whether the ticket's end time has passed.
func (e Entry) Expired() bool {
	return time.Now().After(e.EndTime)
}

// Summary describes the contents of one credential cache file.
type Summary struct {
	Path      string
	Principal string
	Realm     string
	Entries   []Entry
}

// Inspect decodes the credential cache at path.
func Inspect(path string) (*Summary, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("credential cache %s: %w", path, err)
	}

	cc, err := credentials.LoadCCache(path)
	if err != nil {
		return nil, fmt.Errorf("decoding credential cache %s: %w", path, err)
	}

	summary := &Summary{
		Path:      path,
		Principal: cc.GetClientPrincipalName().PrincipalNameString(),
		Realm:     cc.GetClientRealm(),
	}

	for _, cred := range cc.Credentials {
		// MIT kinit stores cache configuration as pseudo-credentials;
		// they are not tickets.
		if strings.HasPrefix(cred.Server.Realm, "X-CACHECONF") {
			continue
		}
		summary.Entries = append(summary.Entries, Entry{
			ServicePrincipal: cred.Server.PrincipalName.PrincipalNameString() + "@" + cred.Server.Realm,
			AuthTime:         cred.AuthTime,
			EndTime:          cred.EndTime,
		})
	}

	return summary, nil
}

// Destroy removes the credential cache at path. Removing a cache that does
// not exist is not an error.
func Destroy(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing credential cache %s: %w", path, err)
	}
	return nil
}
