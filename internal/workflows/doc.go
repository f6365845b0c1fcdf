// Package workflows orchestrates winkrb's multi-step operations.
//
// Commands stay thin: they resolve options and render results, while the
// include-directory registration, KDC merge, and ticket acquisition steps
// live here with their ordering guarantees. Within one Acquire call the
// three steps run strictly in that order; across concurrent calls the
// configuration store serializes merges itself.
package workflows
