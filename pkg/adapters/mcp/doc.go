// Package mcp serves the cipher and named machines as Model Context Protocol tools.
package mcp
