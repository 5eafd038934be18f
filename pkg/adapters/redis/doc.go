// Package redis keeps run records in Redis.
package redis
