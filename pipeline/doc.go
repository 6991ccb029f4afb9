// Package pipeline runs the brand prospecting flow: extract brands for a
// category and time window, match each one to a medium, and persist the
// result.
//
// A run yields exactly one outcome per extracted brand, in extraction
// order. A brand whose matching or persistence fails is skipped with a
// reason and the run continues; only a failed extraction fails the run.
// MatchBrand runs the match and persist steps for a single named brand.
package pipeline
