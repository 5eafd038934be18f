// Package runtime drives the step loop of a compiled machine over a fresh tape.
package runtime
