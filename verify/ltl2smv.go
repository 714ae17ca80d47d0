package verify

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync/atomic"

	"github.com/dekarrin/ltlc/config"
	"github.com/dekarrin/ltlc/ltlcerr"
)

// modulePrefixCounter backs NextModulePrefix's monotonically increasing
// module-name prefix: every translation gets a distinct MODULE name so
// several translated fragments can be concatenated into one file without
// colliding.
var modulePrefixCounter uint64

// NextModulePrefix returns a fresh "ltl2smv_N" prefix for use as
// TranslateFormula's modulePrefix argument.
func NextModulePrefix() string {
	return fmt.Sprintf("ltl2smv_%d", atomic.AddUint64(&modulePrefixCounter, 1))
}

// TranslateFormula runs the external ltl2smv translator on the formula
// already written to formulaFile (see ltl.Print with ltl.NusmvSymbolSet) and
// returns the post-processed SMV module text: extraVars declared alongside
// the translator's own VAR block, and ports appended as module parameters so
// the fragment can be instantiated with the caller's own literals.
func TranslateFormula(ctx context.Context, tools config.ToolPaths, modulePrefix string, formulaFile string, extraVars []Var, ports []string) (string, error) {
	path := tools.Ltl2smv
	if path == "" {
		path = "ltl2smv"
	}

	cmd := exec.CommandContext(ctx, path, modulePrefix, formulaFile)
	out, err := cmd.Output()
	if err != nil {
		return "", ltlcerr.ModelChecker(err, string(out))
	}

	return postProcess(string(out), extraVars, ports), nil
}

// postProcess inserts extraVars before the translator's own VAR block
// (prefixing each translator-emitted variable line with "VAR" the way the
// rest of this package's modules are written) and appends ports as module
// parameters to the MODULE line.
func postProcess(raw string, extraVars []Var, ports []string) string {
	lines := strings.Split(raw, "\n")
	var out []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "MODULE "):
			out = append(out, appendModuleParams(line, ports))
		case trimmed == "VAR":
			for _, v := range extraVars {
				out = append(out, fmt.Sprintf("    VAR %s : %s;", v.Name, smvTypeOf(v.Type)))
			}
			out = append(out, line)
		case strings.HasPrefix(trimmed, "VAR"):
			out = append(out, line)
		case trimmed != "" && !strings.HasPrefix(trimmed, "MODULE") && isBareVarDecl(trimmed):
			out = append(out, "    VAR "+trimmed)
		default:
			out = append(out, line)
		}
	}

	return strings.Join(out, "\n")
}

// isBareVarDecl reports whether a line looks like a translator-emitted
// "name : type;" declaration with no leading keyword, which ltl2smv emits
// under its VAR header without repeating "VAR" on every line.
func isBareVarDecl(line string) bool {
	return strings.Contains(line, ":") && strings.HasSuffix(line, ";") && !strings.Contains(line, "(")
}

func appendModuleParams(moduleLine string, ports []string) string {
	if len(ports) == 0 {
		return moduleLine
	}
	open := strings.Index(moduleLine, "(")
	close_ := strings.LastIndex(moduleLine, ")")
	if open < 0 || close_ < open {
		return moduleLine + "(" + strings.Join(ports, ", ") + ")"
	}
	existing := strings.TrimSpace(moduleLine[open+1 : close_])
	params := ports
	if existing != "" {
		params = append(strings.Split(existing, ","), ports...)
	}
	for i, p := range params {
		params[i] = strings.TrimSpace(p)
	}
	return moduleLine[:open+1] + strings.Join(params, ", ") + moduleLine[close_:]
}
