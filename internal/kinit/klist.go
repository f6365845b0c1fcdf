package kinit

import (
	"context"
	"fmt"
	"strings"

	"github.com/winrmkit/winkrb/internal/expect"
	"github.com/winrmkit/winkrb/internal/krbconf"
)

// Validator checks a candidate configuration by running klist against it.
// It implements krbconf.IncludeValidator.
type Validator struct {
	// SearchPaths overrides the candidate klist locations. Empty means
	// the defaults.
	SearchPaths []string
}

// Validate runs klist with KRB5_CONFIG pointed at confPath and reports the
// diagnostic message if the configuration's include directory could not be
// read. An empty fragment means the configuration loads cleanly. When no
// klist binary is installed the check is skipped and the configuration is
// assumed safe; a missing diagnostic tool should not block operation.
func (v *Validator) Validate(ctx context.Context, confPath string) (string, error) {
	paths := v.SearchPaths
	if len(paths) == 0 {
		paths = defaultKlistPaths
	}
	program := locate(paths)
	if program == "" {
		return "", nil
	}

	outcome, err := expect.Run(ctx, expect.Command{
		Path: program,
		Env:  []string{krbconf.EnvKrb5Config + "=" + confPath},
		Rules: []expect.Rule{
			{
				// The only recognized trigger; klist complaining about
				// anything else (e.g. no credential cache) is fine.
				Stream: expect.Stderr,
				Match: func(buffer, chunk string) bool {
					return strings.Contains(chunk, includeDirErrorMarker)
				},
				React: func(p *expect.Process, buffer, chunk string) {
					p.Fail(chunk)
				},
				KeepBuffer: true,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("running klist: %w", err)
	}

	return strings.TrimSpace(outcome.Fragment), nil
}
