package cipher

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ErrInvalidKey is returned for keys that are neither a number nor a single letter.
var ErrInvalidKey = errors.New("invalid key")

// ParseKey converts a key to a shift: digits are read as a number, a single letter as its
// position in the alphabet (A=1 ... Z=26). Letters are case-insensitive.
func ParseKey(key string) (int, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return 0, fmt.Errorf("%w: empty key", ErrInvalidKey)
	}

	if isDigits(key) {
		n, err := strconv.Atoi(key)
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %v", ErrInvalidKey, key, err)
		}
		return n, nil
	}

	runes := []rune(strings.ToUpper(key))
	if len(runes) == 1 && runes[0] >= 'A' && runes[0] <= 'Z' {
		return int(runes[0]-'A') + 1, nil
	}
	return 0, fmt.Errorf("%w: %q (expected digits or a single letter)", ErrInvalidKey, key)
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) || r > unicode.MaxASCII {
			return false
		}
	}
	return true
}

// Normalize reduces a shift to the range [0, 26).
func Normalize(shift int) int {
	shift %= len(Letters)
	if shift < 0 {
		shift += len(Letters)
	}
	return shift
}
