// Package registry combines machine loaders behind a single name lookup.
package registry
