package verify

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/dekarrin/ltlc/ltl"
	"github.com/dekarrin/ltlc/ltlcerr"
)

// Ltl3baStrategy is the alternate Strategy backed by the ltl3ba translator.
// ltl3ba has no arithmetic or real-valued layer (it only ever sees the
// purely boolean fragment), so it is only suitable for queries whose
// formula and variables are all Bool; Tautology/Emptiness return a
// ModelCheckerError for anything else rather than silently mistranslating
// an arithmetic literal.
type Ltl3baStrategy struct {
	// Path is the ltl3ba executable. Defaults to "ltl3ba" when empty.
	Path string

	// Dir is the directory temp files are written under. Defaults to
	// os.TempDir() when empty.
	Dir string

	// Debug keeps the generated .ltl formula file on disk instead of
	// deleting it once the query returns.
	Debug bool
}

var _ Strategy = (*Ltl3baStrategy)(nil)

// Tautology builds the never-claim Buchi automaton for ¬f: f is a tautology
// exactly when that automaton accepts no word, which ltl3ba reports as an
// empty "never { ... }" body (a single "skip" state looping to itself, or no
// accepting states at all).
func (s *Ltl3baStrategy) Tautology(ctx context.Context, f ltl.Formula, vars []Var) (Result, error) {
	for _, v := range vars {
		if v.Type.Kind != 0 {
			return Result{}, ltlcerr.ModelChecker(nil, "ltl3ba: non-boolean variable "+v.Name)
		}
	}

	neg := ltl.NewUnary(ltl.Not, f)
	raw, err := s.translate(ctx, neg)
	if err != nil {
		return Result{}, err
	}
	if isEmptyNeverClaim(raw) {
		return Result{Holds: true, Raw: raw}, nil
	}
	return Result{Holds: false, Raw: raw}, nil
}

// Emptiness checks whether some accepted word witnesses f, by translating f
// itself and checking whether the resulting never-claim is non-empty.
func (s *Ltl3baStrategy) Emptiness(ctx context.Context, f ltl.Formula, vars []Var) (Result, error) {
	for _, v := range vars {
		if v.Type.Kind != 0 {
			return Result{}, ltlcerr.ModelChecker(nil, "ltl3ba: non-boolean variable "+v.Name)
		}
	}

	raw, err := s.translate(ctx, f)
	if err != nil {
		return Result{}, err
	}
	return Result{Holds: !isEmptyNeverClaim(raw), Raw: raw}, nil
}

func (s *Ltl3baStrategy) translate(ctx context.Context, f ltl.Formula) (string, error) {
	dir := s.Dir
	if dir == "" {
		dir = os.TempDir()
	}
	id := uuid.New().String()
	formulaPath := filepath.Join(dir, "ltlc-"+id+".ltl")

	text := ltl.Print(f, ltl.Ltl3baSymbolSet(), ltl.IgnorePrecedence())
	if err := os.WriteFile(formulaPath, []byte(text), 0o600); err != nil {
		return "", fmt.Errorf("verify: writing ltl3ba formula file: %w", err)
	}
	if !s.Debug {
		defer os.Remove(formulaPath)
	}

	path := s.Path
	if path == "" {
		path = "ltl3ba"
	}

	cmd := exec.CommandContext(ctx, path, "-F", formulaPath)
	out, err := cmd.Output()
	if err != nil {
		return "", ltlcerr.ModelChecker(err, string(out))
	}
	return string(out), nil
}

// isEmptyNeverClaim reports whether a ltl3ba never-claim has no accepting
// state, judged by the text "accept" appearing nowhere in the output.
func isEmptyNeverClaim(raw string) bool {
	return !strings.Contains(raw, "accept")
}
