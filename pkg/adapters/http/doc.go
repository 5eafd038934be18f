// Package http exposes machines, the Caesar cipher and stored runs as a JSON API.
package http
