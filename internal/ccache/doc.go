// Package ccache reads per-user Kerberos credential caches.
//
// Each username gets its own cache file under the winkrb private root (see
// krbconf.CachePath); this package decodes those files with gokrb5 so the
// CLI can show what a cache holds and when its tickets expire. It never
// talks to a KDC: the cache file is produced by kinit and consumed by the
// WinRM protocol client through the KRB5CCNAME convention.
package ccache
