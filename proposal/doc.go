// Package proposal writes a brand's match as a spreadsheet the sales team
// can attach to outreach.
package proposal
