// Package tui holds terminal presentation helpers: the banner, outcome styling and
// markdown descriptions of machines.
package tui
