package krbconf

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// The managed file layout. Everything outside [realms], [domain_realm] and
// the includedir lines is fixed boilerplate that marks the file as
// tool-managed and is rewritten on every save.
const confTemplate = `# This file is managed by the winkrb tool.
# NOTE: Any changes to the logging, libdefaults, domain_realm
# sections of this file will be overwritten.
#

%s
[logging]
 default = FILE:/var/log/krb5libs.log
 kdc = FILE:/var/log/krb5kdc.log
 admin_server = FILE:/var/log/kadmind.log

[libdefaults]
 default_realm = EXAMPLE.COM
 dns_lookup_realm = false
 dns_lookup_kdc = false
 ticket_lifetime = 24h
 renew_lifetime = 7d
 forwardable = true

[realms]
%s
[domain_realm]
%s`

var (
	realmOpenRe  = regexp.MustCompile(`(\S+)\s+=\s+{`)
	kdcRe        = regexp.MustCompile(`kdc\s+=\s+(\S+)`)
	adminRe      = regexp.MustCompile(`admin_server\s+=\s+(\S+)`)
	includeDirRe = regexp.MustCompile(`includedir (\S+)`)
)

// Parse scans krb5.conf text and extracts the managed subset: realm KDC
// sets, admin servers, and includedir directives. Sections and lines the
// tool does not manage are ignored for forward compatibility.
func Parse(r io.Reader) (map[string]*Realm, map[string]struct{}, error) {
	realms := make(map[string]*Realm)
	includeDirs := make(map[string]struct{})

	scanner := bufio.NewScanner(r)
	inRealmsSection := false
	var current *Realm

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case strings.HasPrefix(line, "[realms]"):
			inRealmsSection = true
		case strings.HasPrefix(line, "["):
			inRealmsSection = false
			current = nil
		case strings.HasPrefix(line, "includedir"):
			if m := includeDirRe.FindStringSubmatch(line); m != nil {
				includeDirs[m[1]] = struct{}{}
			}
		case inRealmsSection:
			if line == "" {
				continue
			}

			if m := realmOpenRe.FindStringSubmatch(line); m != nil {
				name := m[1]
				if _, ok := realms[name]; !ok {
					realms[name] = NewRealm(name)
				}
				current = realms[name]
				continue
			}

			if current == nil {
				continue
			}
			if m := kdcRe.FindStringSubmatch(line); m != nil {
				current.KDCs[m[1]] = struct{}{}
			}
			if m := adminRe.FindStringSubmatch(line); m != nil {
				current.AdminServer = m[1]
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("scanning configuration: %w", err)
	}

	return realms, includeDirs, nil
}

// Render serializes the configuration to the managed file grammar. Realms
// with no KDCs are skipped; each rendered realm also gets a domain_realm
// pair mapping its lower-cased name. Output is sorted so identical models
// render identically.
func Render(c *Config) string {
	var includes strings.Builder
	for _, dir := range c.IncludeDirList() {
		fmt.Fprintf(&includes, "includedir %s\n", dir)
	}

	var realms strings.Builder
	var domains strings.Builder
	for _, name := range c.RealmNames() {
		realm := c.Realms[name]
		if realm.Empty() {
			continue
		}

		upper := strings.ToUpper(name)
		fmt.Fprintf(&realms, " %s = {\n", upper)
		for _, kdc := range realm.List() {
			fmt.Fprintf(&realms, "  kdc = %s\n", kdc)
		}
		fmt.Fprintf(&realms, "  admin_server = %s\n }\n", realm.AdminServer)

		lower := strings.ToLower(name)
		fmt.Fprintf(&domains, " .%s = %s\n %s = %s\n", lower, upper, lower, upper)
	}

	return fmt.Sprintf(confTemplate, includes.String(), realms.String(), domains.String())
}
