package cipher

import (
	"fmt"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
)

// Letters is the input alphabet shifted by the cipher.
const Letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

const (
	Blank domain.Symbol = '_'
	// Space is copied through unchanged.
	Space domain.Symbol = ' '
)

const (
	StateScan domain.StateID = "scan"
	StateDone domain.StateID = "done"
)

// Mode selects the direction of the shift.
type Mode string

const (
	Encrypt Mode = "encrypt"
	Decrypt Mode = "decrypt"
)

// ParseMode accepts "encrypt"/"decrypt" and their first letters.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "encrypt", "e", "enc":
		return Encrypt, nil
	case "decrypt", "d", "dec":
		return Decrypt, nil
	default:
		return "", fmt.Errorf("unknown mode %q (expected encrypt or decrypt)", s)
	}
}

// Rotation returns the forward rotation a mode applies for a shift, in [0, 26).
// Decrypting by k is encrypting by 26-k.
func (m Mode) Rotation(shift int) int {
	if m == Decrypt {
		return Normalize(len(Letters) - Normalize(shift))
	}
	return Normalize(shift)
}

// Name returns the conventional machine name, e.g. "caesar-encrypt-3".
func Name(mode Mode, shift int) string {
	return fmt.Sprintf("caesar-%s-%d", mode, Normalize(shift))
}

// Definition builds the machine for mode and shift.
//
// State scan rewrites each letter with its rotated counterpart and moves right; spaces are
// copied; the blank after the message moves to the halting state done. A run over n symbols
// therefore takes exactly n+1 steps.
func Definition(mode Mode, shift int) machine.Definition {
	rot := mode.Rotation(shift)
	rotated := Letters[rot:] + Letters[:rot]

	rules := make([]domain.Rule, 0, len(Letters)+2)
	for i := range len(Letters) {
		rules = append(rules, domain.Rule{
			From:  StateScan,
			Read:  domain.Symbol(Letters[i]),
			To:    StateScan,
			Write: domain.Symbol(rotated[i]),
			Move:  domain.Right,
		})
	}
	rules = append(rules,
		domain.Rule{From: StateScan, Read: Space, To: StateScan, Write: Space, Move: domain.Right},
		domain.Rule{From: StateScan, Read: Blank, To: StateDone, Write: Blank, Move: domain.Stay},
	)

	return machine.Definition{
		Name:     Name(mode, shift),
		States:   []domain.StateID{StateScan, StateDone},
		Alphabet: append(domain.Symbols(Letters), Space),
		Blank:    Blank,
		Start:    StateScan,
		Halting:  []domain.StateID{StateDone},
		Rules:    rules,
	}
}

// EncryptDefinition is Definition(Encrypt, shift).
func EncryptDefinition(shift int) machine.Definition {
	return Definition(Encrypt, shift)
}

// DecryptDefinition is Definition(Decrypt, shift).
func DecryptDefinition(shift int) machine.Definition {
	return Definition(Decrypt, shift)
}
