package cmd

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/dwekat/tooner"
	"github.com/dwekat/tooner/internal/rcfile"
)

// parseDelimiter accepts a literal delimiter byte (",", "|") or the
// keywords "tab"/"comma"/"pipe", since a literal tab is awkward to pass
// on a command line.
func parseDelimiter(s string) (byte, error) {
	switch s {
	case "tab":
		return '\t', nil
	case "comma":
		return ',', nil
	case "pipe":
		return '|', nil
	}
	if len(s) != 1 || (s[0] != ',' && s[0] != '\t' && s[0] != '|') {
		return 0, fmt.Errorf("invalid delimiter %q (want , | \\t, or tab/comma/pipe)", s)
	}
	return s[0], nil
}

// RCConfig holds the CLI's defaults, loaded from .toonrc when present.
// Any flag the user passes explicitly overrides the matching field.
type RCConfig struct {
	Delimiter   string `json:"delimiter"`
	Indent      int    `json:"indent"`
	Strict      bool   `json:"strict"`
	KeyFolding  bool   `json:"keyFolding"`
	ExpandPaths bool   `json:"expandPaths"`
}

// LoadRCConfig reads .toonrc from dir, if present. A missing file
// is not an error; it just yields the zero RCConfig.
func LoadRCConfig(dir string) (RCConfig, error) {
	var cfg RCConfig
	filename := path.Join(dir, ".toonrc")
	data, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := rcfile.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (cfg RCConfig) encodeOptions() tooner.EncodeOptions {
	opts := tooner.EncodeOptions{Strict: cfg.Strict}
	if cfg.Indent > 0 {
		opts.Indent = strings.Repeat(" ", cfg.Indent)
	}
	if cfg.Delimiter != "" {
		if d, err := parseDelimiter(cfg.Delimiter); err == nil {
			opts.Delimiter = d
		}
	}
	if cfg.KeyFolding {
		opts.KeyFolding = tooner.KeyFoldingSafe
	}
	return opts
}

func (cfg RCConfig) decodeOptions() tooner.DecodeOptions {
	opts := tooner.DecodeOptions{Strict: cfg.Strict}
	if cfg.Indent > 0 {
		opts.Indent = cfg.Indent
	}
	if cfg.ExpandPaths {
		opts.ExpandPaths = tooner.ExpandPathsSafe
	}
	return opts
}
