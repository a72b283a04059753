// Package report renders an enriched report for people.
//
// [Markdown] writes the due diligence document: one section per ecosystem
// listing every package, then the license summary, the license
// compatibility findings and the packages whose license could not be
// determined. [Terminal] renders that document with ANSI styling for a
// terminal, and [Table] prints a compact one-line-per-package listing.
//
// Machine-readable output lives in package io.
package report
