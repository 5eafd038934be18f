package machine

import (
	"cmp"
	"slices"

	"github.com/aretw0/turing/pkg/domain"
)

// Table is the immutable transition table of a machine.
type Table struct {
	rules map[domain.Key]domain.Rule
}

// newTable indexes rules by key. A key seen twice is reported, never overwritten;
// the first rule for a key wins.
func newTable(rules []domain.Rule) (Table, []error) {
	t := Table{rules: make(map[domain.Key]domain.Rule, len(rules))}
	var errs []error
	for _, r := range rules {
		if prev, exists := t.rules[r.Key()]; exists {
			errs = append(errs, &ValidationError{
				Kind:    domain.ErrDuplicateTransition,
				Subject: r.String(),
				Reason:  "conflicts with " + prev.String(),
			})
			continue
		}
		t.rules[r.Key()] = r
	}
	return t, errs
}

// Match looks up the rule for (state, symbol). A missing rule is a legitimate halting condition.
func (t Table) Match(state domain.StateID, symbol domain.Symbol) (domain.Rule, bool) {
	r, ok := t.rules[domain.Key{State: state, Symbol: symbol}]
	return r, ok
}

// Len returns the number of rules.
func (t Table) Len() int {
	return len(t.rules)
}

// Rules returns a copy of the rules ordered by state, then symbol.
func (t Table) Rules() []domain.Rule {
	out := make([]domain.Rule, 0, len(t.rules))
	for _, r := range t.rules {
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b domain.Rule) int {
		if c := cmp.Compare(a.From, b.From); c != 0 {
			return c
		}
		return cmp.Compare(a.Read, b.Read)
	})
	return out
}
