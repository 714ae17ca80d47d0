// Package config loads the TOOLS/PATHS configuration the verify package
// needs to find its external model checkers and a scratch directory for
// generated SMV files. It is thin glue, not a CLI surface: one TOML file,
// read once, with no interactive editing or discovery beyond a literal path.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/dekarrin/ltlc/ltlcerr"
)

// ToolPaths is the resolved location of every external executable the
// verify package may shell out to. A zero-value path means "not configured";
// the verify strategies then run the tool by its bare executable name
// (ltl3ba, nuxmv, ltl2smv), resolved through PATH.
type ToolPaths struct {
	Ltl3ba  string
	Nuxmv   string
	Ltl2smv string

	// Debug, when set, tells a Strategy to keep its generated SMV/command/
	// formula files on disk instead of deleting them after the query runs.
	Debug bool
}

// Config is the decoded shape of the TOOLS/PATHS file.
type Config struct {
	ToolsCfg ToolsSection `toml:"TOOLS"`
	PathsCfg PathsSection `toml:"PATHS"`

	// Debug keeps every temp file a Strategy writes instead of deleting it,
	// for inspecting the generated SMV a failing query produced.
	Debug bool `toml:"debug"`
}

type ToolsSection struct {
	Ltl3ba  string `toml:"ltl3ba"`
	Nuxmv   string `toml:"nuxmv"`
	Ltl2smv string `toml:"ltl2smv"`
}

type PathsSection struct {
	TempDir string `toml:"temp_dir"`
}

// Tools returns the config's tool paths in the shape the verify package's
// strategies consume.
func (c Config) Tools() ToolPaths {
	return ToolPaths{
		Ltl3ba:  c.ToolsCfg.Ltl3ba,
		Nuxmv:   c.ToolsCfg.Nuxmv,
		Ltl2smv: c.ToolsCfg.Ltl2smv,
		Debug:   c.Debug,
	}
}

// TempDir returns the configured scratch directory for generated SMV and
// command files.
func (c Config) TempDir() string {
	return c.PathsCfg.TempDir
}

// Load reads and decodes the config file at path. Its absence, any
// unreadable or malformed content, and a missing temp_dir are all fatal.
// Empty tool paths are accepted; see ToolPaths for how they are resolved.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, ltlcerr.Config(path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, ltlcerr.Config(path, err)
	}

	if cfg.PathsCfg.TempDir == "" {
		return Config{}, ltlcerr.Configf(path, "[PATHS] temp_dir is required")
	}

	return cfg, nil
}
