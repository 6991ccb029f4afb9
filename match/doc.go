// Package match pairs a brand with an advertising medium from the catalog
// and writes the outreach material for it.
//
// The query is the brand's issue and description. The catalog returns a
// ranked list and a RankPolicy picks the medium. The match reason is a fixed
// template over the medium's targeting fields, so it is reproducible. The
// call script and the three fit reasons in the proposal email come from a
// language model; the rest of the email is a fixed skeleton.
package match
