// Package middleware provides RunStore decorators: AES-GCM encryption of recorded
// tapes and redaction of runs by machine name.
package middleware
