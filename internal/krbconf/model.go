package krbconf

import "sort"

// Realm describes a Kerberos authentication domain: its KDC set and the
// KDC designated as admin server. AdminServer is a member of KDCs whenever
// KDCs is non-empty, and empty when no KDC exists yet.
type Realm struct {
	Name        string
	KDCs        map[string]struct{}
	AdminServer string
}

// NewRealm returns an empty realm with the given name.
func NewRealm(name string) *Realm {
	return &Realm{
		Name: name,
		KDCs: make(map[string]struct{}),
	}
}

// Has reports whether host is a KDC of the realm.
func (r *Realm) Has(host string) bool {
	_, ok := r.KDCs[host]
	return ok
}

// List returns the realm's KDCs in sorted order.
func (r *Realm) List() []string {
	kdcs := make([]string, 0, len(r.KDCs))
	for kdc := range r.KDCs {
		kdcs = append(kdcs, kdc)
	}
	sort.Strings(kdcs)
	return kdcs
}

// Empty reports whether the realm has no KDCs.
func (r *Realm) Empty() bool {
	return len(r.KDCs) == 0
}

// Config is the in-memory representation of the managed krb5.conf state.
type Config struct {
	// Path is the resolved file location.
	Path string

	// IncludeDirs holds the includedir directives, including the private
	// override subdirectory beside Path.
	IncludeDirs map[string]struct{}

	// Realms maps upper-case realm names to their KDC state.
	Realms map[string]*Realm
}

// NewConfig returns an empty configuration bound to path.
func NewConfig(path string) *Config {
	return &Config{
		Path:        path,
		IncludeDirs: make(map[string]struct{}),
		Realms:      make(map[string]*Realm),
	}
}

// Realm returns the named realm, creating an empty one if absent.
func (c *Config) Realm(name string) *Realm {
	if r, ok := c.Realms[name]; ok {
		return r
	}
	r := NewRealm(name)
	c.Realms[name] = r
	return r
}

// RealmNames returns the configured realm names in sorted order.
func (c *Config) RealmNames() []string {
	names := make([]string, 0, len(c.Realms))
	for name := range c.Realms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IncludeDirList returns the include directories in sorted order.
func (c *Config) IncludeDirList() []string {
	dirs := make([]string, 0, len(c.IncludeDirs))
	for dir := range c.IncludeDirs {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs
}
