// Command hashwires is a small demonstration CLI around the hashwires
// package: generate a secret, commit to it, prove a threshold, and
// verify a proof. Styled after the teacher's cmd/compile/main.go
// os.Args-switch dispatch (no flag library, no subcommand framework).
package main

import (
	"encoding/hex"
	"fmt"
	"log"
	"math/big"
	"os"
	"strconv"

	"github.com/MuriData/hashwires/pkg/digest"
	"github.com/MuriData/hashwires/pkg/hashwires"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "commit":
		err = runCommit(os.Args[2:])
	case "prove":
		err = runProve(os.Args[2:])
	case "verify":
		err = runVerify(os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("hashwires: %v", err)
	}
}

func printUsage() {
	fmt.Println("usage:")
	fmt.Println("  hashwires commit <base> <value> <maxBits>")
	fmt.Println("  hashwires prove  <base> <value> <maxBits> <threshold>")
	fmt.Println("  hashwires verify <base> <commitmentHex> <proofHex> <threshold>")
}

func runCommit(args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("commit: want <base> <value> <maxBits>")
	}
	base, value, maxBits, err := parseSecretArgs(args[0], args[1], args[2])
	if err != nil {
		return err
	}
	secret, err := hashwires.GenSecret(base, value, maxBits, nil)
	if err != nil {
		return fmt.Errorf("generating secret: %w", err)
	}
	commit, err := secret.Commit()
	if err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	fmt.Printf("seed:       %s\n", hex.EncodeToString(secret.Seed[:]))
	fmt.Printf("commitment: %s\n", hex.EncodeToString(commit.Serialize()))
	return nil
}

func runProve(args []string) error {
	if len(args) != 4 {
		return fmt.Errorf("prove: want <base> <value> <maxBits> <threshold>")
	}
	base, value, maxBits, err := parseSecretArgs(args[0], args[1], args[2])
	if err != nil {
		return err
	}
	threshold, ok := new(big.Int).SetString(args[3], 10)
	if !ok {
		return fmt.Errorf("prove: invalid threshold %q", args[3])
	}
	secret, err := hashwires.GenSecret(base, value, maxBits, nil)
	if err != nil {
		return fmt.Errorf("generating secret: %w", err)
	}
	commit, err := secret.Commit()
	if err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	proof, err := secret.Prove(threshold)
	if err != nil {
		return fmt.Errorf("proving: %w", err)
	}
	fmt.Printf("commitment: %s\n", hex.EncodeToString(commit.Serialize()))
	fmt.Printf("proof:      %s\n", hex.EncodeToString(proof.Serialize()))
	return nil
}

func runVerify(args []string) error {
	if len(args) != 4 {
		return fmt.Errorf("verify: want <base> <commitmentHex> <proofHex> <threshold>")
	}
	baseN, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return fmt.Errorf("invalid base %q: %w", args[0], err)
	}
	commitBytes, err := hex.DecodeString(args[1])
	if err != nil {
		return fmt.Errorf("decoding commitment: %w", err)
	}
	proofBytes, err := hex.DecodeString(args[2])
	if err != nil {
		return fmt.Errorf("decoding proof: %w", err)
	}
	threshold, ok := new(big.Int).SetString(args[3], 10)
	if !ok {
		return fmt.Errorf("verify: invalid threshold %q", args[3])
	}
	commit, err := hashwires.DeserializeCommitment(commitBytes, hashwires.Base(baseN))
	if err != nil {
		return fmt.Errorf("parsing commitment: %w", err)
	}
	proof, err := hashwires.DeserializeProof(proofBytes)
	if err != nil {
		return fmt.Errorf("parsing proof: %w", err)
	}
	if err := commit.Verify(digest.Blake3, proof, threshold); err != nil {
		fmt.Println("INVALID")
		return err
	}
	fmt.Println("VALID")
	return nil
}

func parseSecretArgs(baseArg, valueArg, maxBitsArg string) (hashwires.Base, *big.Int, int, error) {
	baseN, err := strconv.ParseUint(baseArg, 10, 32)
	if err != nil {
		return 0, nil, 0, fmt.Errorf("invalid base %q: %w", baseArg, err)
	}
	value, ok := new(big.Int).SetString(valueArg, 10)
	if !ok {
		return 0, nil, 0, fmt.Errorf("invalid value %q", valueArg)
	}
	maxBits, err := strconv.Atoi(maxBitsArg)
	if err != nil {
		return 0, nil, 0, fmt.Errorf("invalid maxBits %q: %w", maxBitsArg, err)
	}
	return hashwires.Base(baseN), value, maxBits, nil
}
