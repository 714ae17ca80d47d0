package verify

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/dekarrin/ltlc/config"
	"github.com/dekarrin/ltlc/ltl"
	"github.com/dekarrin/ltlc/ltlcerr"
)

// NuxmvStrategy is the production Strategy: it renders each query to a
// throwaway SMV file plus a fixed nuXmv "-source" command script, then
// shells out to the nuxmv binary and classifies its captured output.
type NuxmvStrategy struct {
	// Path is the nuxmv executable to invoke. Defaults to "nuxmv" (resolved
	// via PATH) when empty.
	Path string

	// Dir is the directory temp files are written under. Defaults to
	// os.TempDir() when empty.
	Dir string

	// Ltl2smv, when set, is the ltl2smv executable to render the query's
	// module through instead of this package's own renderModule: f is
	// handed to TranslateFormula and the resulting module text used in
	// place of a hand-rendered one.
	Ltl2smv string

	// Debug keeps the generated .smv/.cmd (and, with Ltl2smv set, .ltl)
	// files on disk instead of deleting them once the query returns.
	Debug bool
}

var _ Strategy = (*NuxmvStrategy)(nil)

// Tautology checks whether f holds on every run of a module whose variables
// range unconstrained over vars' declared types.
func (s *NuxmvStrategy) Tautology(ctx context.Context, f ltl.Formula, vars []Var) (Result, error) {
	return s.run(ctx, f, vars)
}

// Emptiness checks whether some run satisfies f, by checking the tautology
// of ¬f: if ¬f is not a tautology, the counterexample nuXmv returns is a
// witness that f itself is satisfiable.
func (s *NuxmvStrategy) Emptiness(ctx context.Context, f ltl.Formula, vars []Var) (Result, error) {
	neg := ltl.NewUnary(ltl.Not, f)
	res, err := s.run(ctx, neg, vars)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Holds:   !res.Holds,
		Bounded: res.Bounded,
		Trace:   res.Trace,
		Raw:     res.Raw,
	}, nil
}

func (s *NuxmvStrategy) run(ctx context.Context, f ltl.Formula, vars []Var) (Result, error) {
	dir := s.Dir
	if dir == "" {
		dir = os.TempDir()
	}
	id := uuid.New().String()
	smvPath := filepath.Join(dir, "ltlc-"+id+".smv")
	cmdPath := filepath.Join(dir, "ltlc-"+id+".cmd")

	module, err := s.renderModule(ctx, dir, id, f, vars)
	if err != nil {
		return Result{}, err
	}
	if err := os.WriteFile(smvPath, []byte(module), 0o600); err != nil {
		return Result{}, fmt.Errorf("verify: writing smv file: %w", err)
	}
	if !s.Debug {
		defer os.Remove(smvPath)
	}

	if err := os.WriteFile(cmdPath, []byte(mathsatCommandScript()), 0o600); err != nil {
		return Result{}, fmt.Errorf("verify: writing command file: %w", err)
	}
	if !s.Debug {
		defer os.Remove(cmdPath)
	}

	path := s.Path
	if path == "" {
		path = "nuxmv"
	}

	cmd := exec.CommandContext(ctx, path, "-source", cmdPath, smvPath)
	out, runErr := cmd.CombinedOutput()
	raw := string(out)

	return classify(raw, runErr)
}

// renderModule produces the module text for one query: the package's own
// renderModule by default, or a run through the external ltl2smv translator
// when s.Ltl2smv names an executable.
func (s *NuxmvStrategy) renderModule(ctx context.Context, dir, id string, f ltl.Formula, vars []Var) (string, error) {
	if s.Ltl2smv == "" {
		return renderModule("main", vars, f), nil
	}

	formulaPath := filepath.Join(dir, "ltlc-"+id+".ltl")
	text := ltl.Print(f, ltl.NusmvSymbolSet(), ltl.IgnorePrecedence())
	if err := os.WriteFile(formulaPath, []byte(text), 0o600); err != nil {
		return "", fmt.Errorf("verify: writing ltl2smv formula file: %w", err)
	}
	if !s.Debug {
		defer os.Remove(formulaPath)
	}

	tools := config.ToolPaths{Ltl2smv: s.Ltl2smv, Debug: s.Debug}
	return TranslateFormula(ctx, tools, NextModulePrefix(), formulaPath, vars, nil)
}

func classify(raw string, runErr error) (Result, error) {
	trimmed := strings.TrimRight(raw, "\n")
	lines := strings.Split(trimmed, "\n")
	last := ""
	if len(lines) > 0 {
		last = strings.TrimSpace(lines[len(lines)-1])
	}

	switch {
	case strings.HasSuffix(raw, "is true\n"), strings.HasSuffix(trimmed, "is true"):
		return Result{Holds: true, Raw: raw}, nil
	case strings.HasPrefix(last, "-- Cannot verify the property"),
		strings.Contains(last, "terminating with bound"),
		strings.Contains(last, "no counterexample found with bound"):
		return Result{Holds: true, Bounded: true, Raw: raw}, nil
	}

	if runErr != nil && !strings.Contains(raw, "-- ") {
		return Result{}, ltlcerr.ModelChecker(runErr, raw)
	}

	return Result{Holds: false, Trace: ParseTrace(raw), Raw: raw}, nil
}
