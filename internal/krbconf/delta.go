package krbconf

import "strings"

// Delta is a structured KDC update instruction, parsed from the
// comma-separated delta string before any merge arithmetic happens.
type Delta struct {
	// Add lists hosts to add as KDCs, in token order.
	Add []string

	// Remove lists hosts to remove from the KDC set.
	Remove []string

	// Admin is the host explicitly marked as admin server with '*',
	// or empty if no token carried the marker. A marked host is also
	// present in Add.
	Admin string
}

// ParseDelta parses a comma-separated list of KDC tokens.
//
// Each token is optionally prefixed: '+host' or bare 'host' adds a KDC,
// '-host' removes one, '*host' adds the host and designates it admin
// server. Whitespace around tokens is ignored.
//
// Example: "10.0.0.10,*10.0.0.20, +10.0.0.30, -10.0.0.40" adds three KDCs,
// marks 10.0.0.20 as admin server, and removes 10.0.0.40.
func ParseDelta(s string) Delta {
	var d Delta
	for _, token := range strings.Split(s, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		switch token[0] {
		case '+':
			if host := strings.TrimSpace(token[1:]); host != "" {
				d.Add = append(d.Add, host)
			}
		case '-':
			if host := strings.TrimSpace(token[1:]); host != "" {
				d.Remove = append(d.Remove, host)
			}
		case '*':
			if host := strings.TrimSpace(token[1:]); host != "" {
				d.Admin = host
				d.Add = append(d.Add, host)
			}
		default:
			d.Add = append(d.Add, token)
		}
	}
	return d
}

// Empty reports whether the delta carries no instructions.
func (d Delta) Empty() bool {
	return len(d.Add) == 0 && len(d.Remove) == 0 && d.Admin == ""
}
