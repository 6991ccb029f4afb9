// Package sqlstore persists brands and brand-media matches in a relational
// database through gorm. sqlite and postgres are supported.
//
// A save is one transaction: the brand is found by exact name or created,
// then the (brand, media) match is found or created. Saving the same pair
// twice leaves a single row.
package sqlstore
