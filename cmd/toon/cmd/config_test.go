package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dwekat/tooner"
)

func TestParseDelimiter(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		desc string
		in   string
		want byte
	}{
		{"Comma", ",", ','},
		{"Tab", "\t", '\t'},
		{"Pipe", "|", '|'},
		{"CommaWord", "comma", ','},
		{"TabWord", "tab", '\t'},
		{"PipeWord", "pipe", '|'},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()
			got, err := parseDelimiter(tc.in)
			if err != nil {
				t.Fatalf("parseDelimiter(%q) failed: %s", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("parseDelimiter(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseDelimiterInvalid(t *testing.T) {
	t.Parallel()

	if _, err := parseDelimiter("nope"); err == nil {
		t.Error(`parseDelimiter("nope") succeeded, want error`)
	}
}

func TestLoadRCConfigMissingFile(t *testing.T) {
	t.Parallel()

	cfg, err := LoadRCConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadRCConfig failed: %s", err)
	}
	if cfg != (RCConfig{}) {
		t.Errorf("LoadRCConfig() = %+v, want zero value", cfg)
	}
}

func TestLoadRCConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	rc := "delimiter: \"pipe\"\nindent: 4\nstrict: true\nkeyFolding: true\nexpandPaths: true\n"
	if err := os.WriteFile(filepath.Join(dir, ".toonrc"), []byte(rc), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %s", err)
	}

	cfg, err := LoadRCConfig(dir)
	if err != nil {
		t.Fatalf("LoadRCConfig failed: %s", err)
	}
	want := RCConfig{Delimiter: "pipe", Indent: 4, Strict: true, KeyFolding: true, ExpandPaths: true}
	if cfg != want {
		t.Errorf("LoadRCConfig() = %+v, want %+v", cfg, want)
	}

	eopts := cfg.encodeOptions()
	if eopts.Delimiter != '|' || eopts.Indent != "    " || !eopts.Strict || eopts.KeyFolding != tooner.KeyFoldingSafe {
		t.Errorf("encodeOptions() = %+v", eopts)
	}
	dopts := cfg.decodeOptions()
	if dopts.Indent != 4 || !dopts.Strict || dopts.ExpandPaths != tooner.ExpandPathsSafe {
		t.Errorf("decodeOptions() = %+v", dopts)
	}
}
