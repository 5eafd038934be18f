package batch

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/turing/pkg/cipher"
)

const (
	separator       = "#"
	expectSeparator = " => "
	commentPrefix   = "//"
)

// ErrMalformedCase is returned for lines that are not of the form KEY#MESSAGE.
var ErrMalformedCase = errors.New("malformed case")

// Case is one KEY#MESSAGE line.
type Case struct {
	Line     int    `json:"line,omitempty"`
	Key      string `json:"key"`
	Shift    int    `json:"shift"`
	Message  string `json:"message"`
	Expected string `json:"expected,omitempty"`
}

// String renders the case back into its file form.
func (c Case) String() string {
	s := c.Key + separator + c.Message
	if c.Expected != "" {
		s += expectSeparator + c.Expected
	}
	return s
}

// ParseCase parses a single line. Only the first '#' separates key and message.
func ParseCase(line string) (Case, error) {
	line = strings.TrimSpace(line)
	key, rest, ok := strings.Cut(line, separator)
	if !ok {
		return Case{}, fmt.Errorf("%w: missing %q in %q", ErrMalformedCase, separator, line)
	}

	shift, err := cipher.ParseKey(key)
	if err != nil {
		return Case{}, fmt.Errorf("%w: %w", ErrMalformedCase, err)
	}

	c := Case{Key: strings.TrimSpace(key), Shift: shift, Message: rest}
	if msg, expected, found := strings.Cut(rest, expectSeparator); found {
		c.Message = msg
		c.Expected = strings.TrimSpace(expected)
	}
	return c, nil
}

// ParseCases reads every case from r. Line numbers are 1-based.
func ParseCases(r io.Reader) ([]Case, error) {
	var cases []Case
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}
		c, err := ParseCase(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		c.Line = n
		cases = append(cases, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cases: %w", err)
	}
	return cases, nil
}

// LoadFile reads the cases stored at path.
func LoadFile(path string) ([]Case, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseCases(f)
}

// WriteCases writes cases one per line.
func WriteCases(w io.Writer, cases []Case) error {
	for _, c := range cases {
		if _, err := fmt.Fprintln(w, c.String()); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile writes cases to path, replacing any existing file.
func WriteFile(path string, cases []Case) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCases(f, cases); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
