package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/aretw0/turing/pkg/batch"
	"github.com/aretw0/turing/pkg/cipher"
	"github.com/aretw0/turing/pkg/domain"
)

// Files written by the menu after each operation.
const (
	EncryptResultFile = "encrypt_result.txt"
	DecryptResultFile = "decrypt_result.txt"
	ManualResultFile  = "manual_result.txt"
)

var rule = strings.Repeat("=", 60)

// MenuOptions configures the interactive menu.
type MenuOptions struct {
	In     io.Reader
	Out    io.Writer
	Cipher *cipher.Cipher
	Logger *slog.Logger

	// CasesDir holds the case files; missing files are created from the samples.
	CasesDir string
	// OutDir receives the result files.
	OutDir string
	// Interactive enables the banner and "press Enter" pauses.
	Interactive bool
}

// Menu is the numbered interactive front end of the cipher.
type Menu struct {
	opts   MenuOptions
	in     *bufio.Reader
	out    io.Writer
	styler *tui.Styler
	logger *slog.Logger
}

// NewMenu creates a menu. Nil In/Out default to Stdin/Stdout.
func NewMenu(opts MenuOptions) *Menu {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Cipher == nil {
		opts.Cipher = cipher.New()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	if opts.CasesDir == "" {
		opts.CasesDir = "."
	}
	if opts.OutDir == "" {
		opts.OutDir = opts.CasesDir
	}
	return &Menu{
		opts:   opts,
		in:     bufio.NewReader(opts.In),
		out:    opts.Out,
		styler: tui.NewStyler(opts.Out),
		logger: opts.Logger,
	}
}

// Run shows the menu until the user exits, input ends or ctx is cancelled.
func (m *Menu) Run(ctx context.Context) error {
	if err := m.ensureCases(ctx); err != nil {
		return err
	}
	if m.opts.Interactive {
		tui.PrintBanner(m.out)
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		m.printMenu()

		choice, err := m.prompt("Select an option: ")
		if err != nil {
			if isInterrupted(err) {
				fmt.Fprintln(m.out)
				return nil
			}
			return err
		}

		switch choice {
		case "1":
			err = m.processCases(ctx, cipher.Encrypt, batch.EncryptCasesFile, EncryptResultFile)
		case "2":
			err = m.processCases(ctx, cipher.Decrypt, batch.DecryptCasesFile, DecryptResultFile)
		case "3":
			err = m.processManual(ctx)
		case "4":
			err = m.viewAllCases()
		case "5":
			fmt.Fprintf(m.out, "\n%s\nThanks for using the Turing machine Caesar cipher\n%s\n", rule, rule)
			return nil
		default:
			fmt.Fprintln(m.out, m.styler.Error("Invalid option. Try again."))
		}
		if err != nil {
			if isInterrupted(err) {
				fmt.Fprintln(m.out)
				return nil
			}
			return err
		}
	}
}

func (m *Menu) printMenu() {
	fmt.Fprintf(m.out, "\n%s\n    %s\n%s\n", rule, m.styler.Header("TURING MACHINE - CAESAR CIPHER"), rule)
	fmt.Fprintln(m.out, "\n[1] Encrypt message")
	fmt.Fprintln(m.out, "[2] Decrypt message")
	fmt.Fprintln(m.out, "[3] Enter message manually")
	fmt.Fprintln(m.out, "[4] View test cases")
	fmt.Fprintln(m.out, "[5] Exit")
	fmt.Fprintln(m.out, strings.Repeat("-", 60))
}

// prompt prints label and returns the next trimmed line.
func (m *Menu) prompt(label string) (string, error) {
	fmt.Fprint(m.out, label)
	line, err := m.in.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (m *Menu) ensureCases(ctx context.Context) error {
	path := filepath.Join(m.opts.CasesDir, batch.EncryptCasesFile)
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	written, err := batch.InitDir(ctx, m.opts.Cipher, m.opts.CasesDir)
	if err != nil {
		return fmt.Errorf("failed to create sample cases: %w", err)
	}
	for _, p := range written {
		printSystemMessage(m.out, "Created %s", p)
	}
	return nil
}

func (m *Menu) showCases(file string) ([]batch.Case, error) {
	path := filepath.Join(m.opts.CasesDir, file)
	cases, err := batch.LoadFile(path)
	if err != nil {
		fmt.Fprintln(m.out, m.styler.Error(fmt.Sprintf("Cannot read %s: %v", path, err)))
		return nil, nil
	}
	fmt.Fprintf(m.out, "\nCases in '%s':\n%s\n", file, strings.Repeat("-", 60))
	for i, c := range cases {
		fmt.Fprintf(m.out, "[%d] %s#%s\n", i+1, c.Key, c.Message)
	}
	return cases, nil
}

func (m *Menu) processCases(ctx context.Context, mode cipher.Mode, casesFile, resultFile string) error {
	fmt.Fprintf(m.out, "\n%s\nMODE: %s\n%s\n", rule, strings.ToUpper(string(mode)), rule)

	cases, err := m.showCases(casesFile)
	if err != nil || len(cases) == 0 {
		return err
	}

	answer, err := m.prompt(fmt.Sprintf("\nSelect the case to %s (0 to cancel): ", mode))
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(answer)
	if err != nil {
		fmt.Fprintln(m.out, m.styler.Error("Invalid input"))
		return nil
	}
	if n == 0 {
		return nil
	}
	if n < 1 || n > len(cases) {
		fmt.Fprintln(m.out, m.styler.Error("Invalid option"))
		return nil
	}

	c := cases[n-1]
	fmt.Fprintf(m.out, "\n%s\nPROCESSING...\n%s\n", strings.Repeat("-", 60), strings.Repeat("-", 60))
	fmt.Fprintf(m.out, "Input:    %s#%s\n", c.Key, c.Message)
	fmt.Fprintf(m.out, "Key:      %s (shift = %d)\n", c.Key, c.Shift)
	fmt.Fprintf(m.out, "Message:  %s\n", c.Message)

	res, ok := m.apply(ctx, mode, c.Shift, c.Message)
	if !ok {
		return nil
	}
	if c.Expected != "" && c.Expected != res.Output {
		fmt.Fprintln(m.out, m.styler.Error(fmt.Sprintf("Expected %q", c.Expected)))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Input: %s#%s\n", c.Key, c.Message)
	fmt.Fprintf(&sb, "Key: %d\n", c.Shift)
	fmt.Fprintf(&sb, "Mode: %s\n", mode)
	fmt.Fprintf(&sb, "Message: %s\n", c.Message)
	fmt.Fprintf(&sb, "Result: %s\n", res.Output)
	fmt.Fprintf(&sb, "Steps: %d\n", res.Steps)
	return m.saveResult(resultFile, sb.String())
}

func (m *Menu) processManual(ctx context.Context) error {
	fmt.Fprintf(m.out, "\n%s\nMODE: MANUAL INPUT\n%s\n", rule, rule)
	fmt.Fprintln(m.out, "\n[1] Encrypt")
	fmt.Fprintln(m.out, "[2] Decrypt")

	op, err := m.prompt("Select operation: ")
	if err != nil {
		return err
	}
	var mode cipher.Mode
	switch op {
	case "1":
		mode = cipher.Encrypt
	case "2":
		mode = cipher.Decrypt
	default:
		fmt.Fprintln(m.out, m.styler.Error("Invalid option"))
		return nil
	}

	fmt.Fprintln(m.out, "\nEnter the input as KEY#MESSAGE")
	fmt.Fprintln(m.out, "Example: 3#HELLO WORLD  or  D#HELLO WORLD")
	line, err := m.prompt("Input: ")
	if err != nil {
		return err
	}

	c, err := batch.ParseCase(strings.ToUpper(line))
	if err != nil {
		fmt.Fprintln(m.out, m.styler.Error(fmt.Sprintf("Wrong format: %v", err)))
		return nil
	}
	fmt.Fprintf(m.out, "\nKey: %s (shift = %d)\nMessage: %s\n", c.Key, c.Shift, c.Message)

	res, ok := m.apply(ctx, mode, c.Shift, c.Message)
	if !ok {
		return nil
	}
	content := fmt.Sprintf("Operation: %s\nInput: %s#%s\nResult: %s\nSteps: %d\n", mode, c.Key, c.Message, res.Output, res.Steps)
	return m.saveResult(ManualResultFile, content)
}

// apply runs the machine and reports the outcome; ok is false when nothing should be saved.
func (m *Menu) apply(ctx context.Context, mode cipher.Mode, shift int, msg string) (*domain.RunResult, bool) {
	fmt.Fprintln(m.out, "\nRunning the Turing machine...")
	res, err := m.opts.Cipher.Apply(ctx, mode, shift, msg)
	if err != nil {
		m.logger.Warn("run failed", "mode", mode, "shift", shift, "error", err)
		fmt.Fprintln(m.out, m.styler.Error(fmt.Sprintf("Error: %v", err)))
		return nil, false
	}
	if !res.Accepted() {
		fmt.Fprintf(m.out, "Outcome: %s after %d steps\n", m.styler.Outcome(res.Outcome), res.Steps)
		return nil, false
	}

	label := "Encrypted message"
	if mode == cipher.Decrypt {
		label = "Decrypted message"
	}
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, m.styler.Success(fmt.Sprintf("%s: %s", label, res.Output)))
	fmt.Fprintf(m.out, "Outcome: %s, %d steps\n", m.styler.Outcome(res.Outcome), res.Steps)
	return res, true
}

func (m *Menu) viewAllCases() error {
	fmt.Fprintf(m.out, "\n%s\nAVAILABLE TEST CASES\n%s\n", rule, rule)
	fmt.Fprintln(m.out, "\nENCRYPTION CASES:")
	if _, err := m.showCases(batch.EncryptCasesFile); err != nil {
		return err
	}
	fmt.Fprintln(m.out, "\nDECRYPTION CASES:")
	if _, err := m.showCases(batch.DecryptCasesFile); err != nil {
		return err
	}
	if m.opts.Interactive {
		_, err := m.prompt("\nPress Enter to continue...")
		return err
	}
	return nil
}

func (m *Menu) saveResult(file, content string) error {
	if err := os.MkdirAll(m.opts.OutDir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(m.opts.OutDir, file)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}
	printSystemMessage(m.out, "Result saved to %s", path)
	return nil
}
