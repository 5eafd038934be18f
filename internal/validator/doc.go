// Package validator reports structural warnings about machines that compile but
// cannot behave as intended, such as unreachable or dead-end states.
package validator
