// Package file implements a run store that keeps one JSON file per run.
package file
