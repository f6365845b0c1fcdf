// Package configs manages winkrb's own user configuration.
//
// This is separate from the shared krb5.conf managed by the krbconf
// package: config.toml lives in the user's config directory
// (~/.config/winkrb/config.toml on Linux) and holds CLI conveniences
// like a default principal and overrides for the kinit/klist install
// locations. It is never consumed by Kerberos libraries or tools.
package configs
