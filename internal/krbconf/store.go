package krbconf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// IncludeValidator checks that the configuration at confPath still loads
// cleanly after an include directory was added. A non-empty fragment means
// the directory could not be read and must be rejected. Implementations
// that cannot run (diagnostic tool not installed) return ("", nil).
type IncludeValidator interface {
	Validate(ctx context.Context, confPath string) (fragment string, err error)
}

// Store is the sole writer of the managed krb5.conf within this process.
//
// Merge operations read, mutate, and rewrite the same in-memory model and
// backing file, so they are serialized with a mutex; unserialized merges
// would lose one side's update. Every successful mutation persists before
// returning, keeping the model and the file consistent with each other.
type Store struct {
	mu        sync.Mutex
	config    *Config
	validator IncludeValidator
}

// Open loads the configuration at path, or an empty one if the file does
// not exist yet. An empty path resolves via DefaultPath. The private
// override subdirectory beside the file is created and registered as an
// include directory, and KRB5_CONFIG is exported for the current process
// so Kerberos libraries pick up the managed file.
func Open(path string, validator IncludeValidator) (*Store, error) {
	if path == "" {
		path = DefaultPath()
	}

	config := NewConfig(path)

	file, err := os.Open(path)
	if err == nil {
		realms, includeDirs, parseErr := Parse(file)
		file.Close()
		if parseErr != nil {
			return nil, fmt.Errorf("loading %s: %w", path, parseErr)
		}
		config.Realms = realms
		config.IncludeDirs = includeDirs
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	if err := os.Setenv(EnvKrb5Config, path); err != nil {
		return nil, fmt.Errorf("exporting %s: %w", EnvKrb5Config, err)
	}

	s := &Store{config: config, validator: validator}
	if err := s.ensureOverrideDir(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the location of the managed file.
func (s *Store) Path() string {
	return s.config.Path
}

// Snapshot returns a deep copy of the current configuration for display.
func (s *Store) Snapshot() *Config {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := NewConfig(s.config.Path)
	for dir := range s.config.IncludeDirs {
		snap.IncludeDirs[dir] = struct{}{}
	}
	for name, realm := range s.config.Realms {
		r := NewRealm(realm.Name)
		r.AdminServer = realm.AdminServer
		for kdc := range realm.KDCs {
			r.KDCs[kdc] = struct{}{}
		}
		snap.Realms[name] = r
	}
	return snap
}

// MergeKDCs applies a parsed KDC delta to the named realm.
//
// The realm name is upper-cased. Additions and removals are computed as
// set differences against the current KDC set; if nothing observable
// changes, the file is not rewritten and changed is false. The admin
// server is chosen in this order: the host explicitly marked with '*',
// the current admin server when it is not being removed, the first delta
// token still in the set, and finally the first remaining KDC in sorted
// order so the admin-server invariant holds after every merge.
func (s *Store) MergeKDCs(realmName string, delta Delta) (changed bool, err error) {
	if delta.Empty() {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	realmName = strings.ToUpper(strings.TrimSpace(realmName))
	realm := s.config.Realm(realmName)

	var additions []string
	for _, host := range delta.Add {
		if !realm.Has(host) {
			additions = append(additions, host)
		}
	}
	var removals []string
	removed := make(map[string]struct{})
	for _, host := range delta.Remove {
		if realm.Has(host) {
			removals = append(removals, host)
			removed[host] = struct{}{}
		}
	}

	merged := make(map[string]struct{}, len(realm.KDCs)+len(additions))
	for kdc := range realm.KDCs {
		merged[kdc] = struct{}{}
	}
	for _, host := range additions {
		merged[host] = struct{}{}
	}
	for _, host := range removals {
		delete(merged, host)
	}

	admin := pickAdmin(realm.AdminServer, delta, merged, removed)

	if len(additions) == 0 && len(removals) == 0 && admin == realm.AdminServer {
		return false, nil
	}

	realm.KDCs = merged
	realm.AdminServer = admin
	if err := s.save(); err != nil {
		return false, err
	}
	return true, nil
}

// RegisterIncludeDir adds dir to the configuration's include directories.
//
// The directory is added speculatively and persisted, then validated; if
// validation reports it unreadable it is removed and the file persisted
// again. kept reports whether the directory is in the configuration after
// the call; a rejection is not an error, only an observable outcome.
func (s *Store) RegisterIncludeDir(ctx context.Context, dir string) (kept bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.config.IncludeDirs[dir]; ok {
		return true, nil
	}

	s.config.IncludeDirs[dir] = struct{}{}
	if err := s.save(); err != nil {
		return false, err
	}

	if s.validator == nil {
		return true, nil
	}

	fragment, err := s.validator.Validate(ctx, s.config.Path)
	if err != nil {
		return true, fmt.Errorf("validating include directory %s: %w", dir, err)
	}
	if fragment == "" {
		return true, nil
	}

	delete(s.config.IncludeDirs, dir)
	if err := s.save(); err != nil {
		return false, err
	}
	return false, nil
}

// pickAdmin selects the admin server for a merged KDC set.
func pickAdmin(current string, delta Delta, merged map[string]struct{}, removed map[string]struct{}) string {
	member := func(host string) bool {
		_, ok := merged[host]
		return ok
	}

	if delta.Admin != "" && member(delta.Admin) {
		return delta.Admin
	}
	if current != "" {
		if _, gone := removed[current]; !gone && member(current) {
			return current
		}
	}
	for _, host := range delta.Add {
		if member(host) {
			return host
		}
	}
	// Fall back to any remaining KDC so the invariant holds; sorted order
	// keeps the choice deterministic.
	var best string
	for host := range merged {
		if best == "" || host < best {
			best = host
		}
	}
	return best
}

// ensureOverrideDir creates the private include directory beside the
// managed file (reserved for user-supplied overrides) and registers it.
func (s *Store) ensureOverrideDir() error {
	dir := filepath.Join(filepath.Dir(s.config.Path), "config")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating override directory %s: %w", dir, err)
	}
	s.config.IncludeDirs[dir] = struct{}{}
	return nil
}

// save rewrites the managed file. Callers must hold s.mu.
func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.config.Path), 0755); err != nil {
		return fmt.Errorf("creating configuration directory: %w", err)
	}
	if err := s.ensureOverrideDir(); err != nil {
		return err
	}
	if err := os.WriteFile(s.config.Path, []byte(Render(s.config)), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", s.config.Path, err)
	}
	return nil
}
