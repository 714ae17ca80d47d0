/*
Ltlcheck is a minimal batch checker for Assume/Guarantee contracts.

It builds a single contract from an assumption and a guarantee given on the
command line, then runs one compatibility or consistency query against it
through an external model checker, printing "HOLDS" or "FAILS" to stdout.
No separate output marks a verdict that was only reached within the
bounded-model-checking horizon.

Usage:

	ltlcheck -assumption EXPR -guarantee EXPR [flags]

The flags are:

	-name NAME
		Name to give the contract. Defaults to "C".

	-assumption EXPR
		LTL source text for the contract's assumption. Defaults to "TRUE".

	-guarantee EXPR
		LTL source text for the contract's guarantee.

	-saturated
		Treat -guarantee as already saturated (G = ¬A ∨ G) instead of
		rewriting it at construction time.

	-check {compatible,consistent}
		Which query to run. Defaults to "consistent".

	-config FILE
		Path to the TOOLS/PATHS config file naming the nuXmv executable and a
		scratch directory. Required unless -backend is "fake".

	-backend {nuxmv,ltl3ba,fake}
		Which Strategy to query against. "ltl3ba" is the Buchi-automaton
		backend and only accepts contracts with no non-boolean ports. "fake"
		is a brute-force in-memory checker with the same boolean-only
		restriction; it needs no -config and is meant for quick sanity
		checks, not production verification.

	-version
		Print the ltlc version and exit.

This is a thin example client; it is not the library's supported API.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/dekarrin/ltlc/attribute"
	"github.com/dekarrin/ltlc/config"
	"github.com/dekarrin/ltlc/contract"
	"github.com/dekarrin/ltlc/internal/version"
	"github.com/dekarrin/ltlc/ltl"
	"github.com/dekarrin/ltlc/verify"
)

const (
	// ExitSuccess indicates a decided query (holds or fails).
	ExitSuccess = iota

	// ExitBounded is reserved for a query that could not be decided within
	// the bounded-model-checking horizon; main never exits with it.
	ExitBounded

	// ExitInitError indicates a problem building the contract or backend,
	// an unknown -check value, or an error returned while running the query.
	ExitInitError
)

var (
	returnCode int = ExitSuccess

	flagName       = flag.String("name", "C", "name to give the contract")
	flagAssumption = flag.String("assumption", "TRUE", "LTL source for the assumption")
	flagGuarantee  = flag.String("guarantee", "", "LTL source for the guarantee")
	flagSaturated  = flag.Bool("saturated", false, "treat -guarantee as already saturated")
	flagCheck      = flag.String("check", "consistent", "query to run: compatible or consistent")
	flagConfig     = flag.String("config", "", "path to the TOOLS/PATHS config file")
	flagBackend    = flag.String("backend", "nuxmv", "strategy backend: nuxmv, ltl3ba, or fake")
	flagVersion    = flag.Bool("version", false, "print the ltlc version and exit")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	flag.Parse()

	if *flagVersion {
		fmt.Println(version.Current)
		return
	}

	strat, err := buildStrategy()
	if err != nil {
		fmt.Fprintln(os.Stderr, "ltlcheck:", err)
		returnCode = ExitInitError
		return
	}

	reg := attribute.NewRegistry()
	c, err := contract.New(*flagName, nil, nil, *flagAssumption, *flagGuarantee, ltl.BaseSymbolSet(), "ltlcheck", reg, *flagSaturated, false)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ltlcheck: building contract:", err)
		returnCode = ExitInitError
		return
	}

	ctx := context.Background()

	var holds bool
	switch *flagCheck {
	case "compatible":
		holds, err = c.IsCompatible(ctx, strat)
	case "consistent":
		holds, err = c.IsConsistent(ctx, strat)
	default:
		fmt.Fprintf(os.Stderr, "ltlcheck: unknown -check value %q\n", *flagCheck)
		returnCode = ExitInitError
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "ltlcheck: running query:", err)
		returnCode = ExitInitError
		return
	}

	if holds {
		fmt.Println("HOLDS")
	} else {
		fmt.Println("FAILS")
	}
}

func buildStrategy() (verify.Strategy, error) {
	if *flagBackend == "fake" {
		return verify.Fake{}, nil
	}

	if *flagConfig == "" {
		return nil, fmt.Errorf("-config is required for backend %q", *flagBackend)
	}
	cfg, err := config.Load(*flagConfig)
	if err != nil {
		return nil, err
	}

	switch *flagBackend {
	case "nuxmv":
		tools := cfg.Tools()
		return &verify.NuxmvStrategy{Path: tools.Nuxmv, Dir: cfg.TempDir(), Ltl2smv: tools.Ltl2smv, Debug: tools.Debug}, nil
	case "ltl3ba":
		tools := cfg.Tools()
		return &verify.Ltl3baStrategy{Path: tools.Ltl3ba, Dir: cfg.TempDir(), Debug: tools.Debug}, nil
	default:
		return nil, fmt.Errorf("unknown -backend value %q", *flagBackend)
	}
}
