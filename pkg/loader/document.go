package loader

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
)

// ErrInvalidSymbol is returned for symbols that are not exactly one character long.
var ErrInvalidSymbol = errors.New("symbol must be a single character")

// Document is the serialized form of a machine.
// It uses "mapstructure" tags so loosely typed YAML/JSON maps decode into it.
type Document struct {
	Name            string       `mapstructure:"name" yaml:"name,omitempty" json:"name,omitempty"`
	Description     string       `mapstructure:"description" yaml:"description,omitempty" json:"description,omitempty"`
	States          []string     `mapstructure:"states" yaml:"states" json:"states"`
	Alphabet        []string     `mapstructure:"alphabet" yaml:"alphabet" json:"alphabet"`
	TapeAlphabet    []string     `mapstructure:"tape_alphabet" yaml:"tape_alphabet,omitempty" json:"tape_alphabet,omitempty"`
	Blank           string       `mapstructure:"blank" yaml:"blank" json:"blank"`
	StartState      string       `mapstructure:"start_state" yaml:"start_state" json:"start_state"`
	AcceptingStates []string     `mapstructure:"accepting_states" yaml:"accepting_states" json:"accepting_states"`
	Transitions     []Transition `mapstructure:"transitions" yaml:"transitions" json:"transitions"`
}

// Transition is a single rule of a Document.
type Transition struct {
	FromState   string `mapstructure:"from_state" yaml:"from_state" json:"from_state"`
	ReadSymbol  string `mapstructure:"read_symbol" yaml:"read_symbol" json:"read_symbol"`
	ToState     string `mapstructure:"to_state" yaml:"to_state" json:"to_state"`
	WriteSymbol string `mapstructure:"write_symbol" yaml:"write_symbol" json:"write_symbol"`
	Move        string `mapstructure:"move" yaml:"move" json:"move"`
}

// Definition converts the document into an unvalidated machine definition.
// Only syntax is checked here; semantic validation belongs to machine.Compile.
func (d *Document) Definition() (machine.Definition, error) {
	def := machine.Definition{
		Name:  d.Name,
		Start: domain.StateID(d.StartState),
	}

	var err error
	if def.Blank, err = symbol("blank", d.Blank); err != nil {
		return def, err
	}
	if def.Alphabet, err = symbols("alphabet", d.Alphabet); err != nil {
		return def, err
	}
	if def.TapeSymbols, err = symbols("tape_alphabet", d.TapeAlphabet); err != nil {
		return def, err
	}
	def.States = stateIDs(d.States)
	def.Halting = stateIDs(d.AcceptingStates)

	def.Rules = make([]domain.Rule, 0, len(d.Transitions))
	for i, t := range d.Transitions {
		field := fmt.Sprintf("transitions[%d]", i)
		read, err := symbol(field+".read_symbol", t.ReadSymbol)
		if err != nil {
			return def, err
		}
		write, err := symbol(field+".write_symbol", t.WriteSymbol)
		if err != nil {
			return def, err
		}
		move, err := domain.ParseMove(t.Move)
		if err != nil {
			return def, fmt.Errorf("%s.move: %w", field, err)
		}
		def.Rules = append(def.Rules, domain.Rule{
			From:  domain.StateID(t.FromState),
			Read:  read,
			To:    domain.StateID(t.ToState),
			Write: write,
			Move:  move,
		})
	}
	return def, nil
}

// FromDefinition builds the serialized form of def.
func FromDefinition(def machine.Definition) Document {
	doc := Document{
		Name:            def.Name,
		States:          stateStrings(def.States),
		Alphabet:        symbolStrings(def.Alphabet),
		TapeAlphabet:    symbolStrings(def.TapeSymbols),
		Blank:           def.Blank.String(),
		StartState:      def.Start.String(),
		AcceptingStates: stateStrings(def.Halting),
		Transitions:     make([]Transition, 0, len(def.Rules)),
	}
	for _, r := range def.Rules {
		doc.Transitions = append(doc.Transitions, Transition{
			FromState:   r.From.String(),
			ReadSymbol:  r.Read.String(),
			ToState:     r.To.String(),
			WriteSymbol: r.Write.String(),
			Move:        r.Move.String(),
		})
	}
	return doc
}

func symbol(field, s string) (domain.Symbol, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%s: %w, got %q", field, ErrInvalidSymbol, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return domain.Symbol(r), nil
}

func symbols(field string, in []string) ([]domain.Symbol, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make([]domain.Symbol, 0, len(in))
	for i, s := range in {
		sym, err := symbol(fmt.Sprintf("%s[%d]", field, i), s)
		if err != nil {
			return nil, err
		}
		out = append(out, sym)
	}
	return out, nil
}

func stateIDs(in []string) []domain.StateID {
	out := make([]domain.StateID, 0, len(in))
	for _, s := range in {
		out = append(out, domain.StateID(s))
	}
	return out
}

func stateStrings(in []domain.StateID) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, s.String())
	}
	return out
}

func symbolStrings(in []domain.Symbol) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, s.String())
	}
	return out
}
