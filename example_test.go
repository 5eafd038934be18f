package turing_test

import (
	"context"
	"fmt"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/pkg/cipher"
	"github.com/aretw0/turing/pkg/machine"
)

func ExampleMachine_Transform() {
	// Compile the encryption machine for shift 3 and bind it to an engine.
	spec := machine.MustCompile(cipher.EncryptDefinition(3))
	m, err := turing.New(spec)
	if err != nil {
		panic(err)
	}

	out, err := m.Transform(context.Background(), "HELLO WORLD")
	if err != nil {
		panic(err)
	}
	fmt.Println(out)
	// Output: KHOOR ZRUOG
}

func ExampleMachine_Run() {
	m, _ := turing.New(machine.MustCompile(cipher.DecryptDefinition(3)))

	res, err := m.Run(context.Background(), "KHOOR")
	if err != nil {
		panic(err)
	}
	fmt.Println(res.Outcome, res.Output, res.Steps)
	// Output: accepted HELLO 6
}
