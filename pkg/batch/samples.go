package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/turing/pkg/cipher"
)

// Default file names used by `cases init` and the interactive menu.
const (
	EncryptCasesFile = "encrypt_cases.txt"
	DecryptCasesFile = "decrypt_cases.txt"
)

var sampleLines = []string{
	"3#ROMA NO FUE CONSTRUIDA EN UN DIA",
	"1#HOLA MUNDO",
	"5#PYTHON ES GENIAL",
	"D#CESAR FUE UN EMPERADOR",
	"13#ESTE ES UN MENSAJE SECRETO",
	"7#LA TEORIA DE LA COMPUTACION ES FASCINANTE",
	"B#MAQUINA DE TURING",
	"10#ALGORITMOS Y ESTRUCTURAS DE DATOS",
	"A#PROYECTO DE TEORIA DE LA COMPUTACION",
	"Z#CIFRADO CESAR ES SIMPLE PERO INTERESANTE",
}

// SampleEncryptCases returns the built-in encryption cases.
func SampleEncryptCases() []Case {
	cases := make([]Case, 0, len(sampleLines))
	for i, line := range sampleLines {
		c, err := ParseCase(line)
		if err != nil {
			panic(fmt.Sprintf("invalid sample case %q: %v", line, err))
		}
		c.Line = i + 1
		cases = append(cases, c)
	}
	return cases
}

// GenerateDecryptCases encrypts every case so that decrypting the result with the same key
// yields the original message, which is recorded as the expectation.
func GenerateDecryptCases(ctx context.Context, c *cipher.Cipher, encrypt []Case) ([]Case, error) {
	out := make([]Case, 0, len(encrypt))
	for i, enc := range encrypt {
		ciphertext, err := c.Encrypt(ctx, enc.Shift, enc.Message)
		if err != nil {
			return nil, fmt.Errorf("case %d (%s): %w", i+1, enc, err)
		}
		out = append(out, Case{
			Line:     i + 1,
			Key:      enc.Key,
			Shift:    enc.Shift,
			Message:  ciphertext,
			Expected: enc.Message,
		})
	}
	return out, nil
}

// InitDir writes the sample encryption file and its matching decryption file into dir.
// It returns the paths written.
func InitDir(ctx context.Context, c *cipher.Cipher, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	encrypt := SampleEncryptCases()
	decrypt, err := GenerateDecryptCases(ctx, c, encrypt)
	if err != nil {
		return nil, err
	}

	encPath := filepath.Join(dir, EncryptCasesFile)
	decPath := filepath.Join(dir, DecryptCasesFile)
	if err := WriteFile(encPath, encrypt); err != nil {
		return nil, err
	}
	if err := WriteFile(decPath, decrypt); err != nil {
		return nil, err
	}
	return []string{encPath, decPath}, nil
}
