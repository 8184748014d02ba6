package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/dwekat/tooner"
	"github.com/dwekat/tooner/toonfmt"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	encodeFrom         string
	encodeDelimiter    string
	encodeIndent       int
	encodeKeyFold      bool
	encodeFlattenDepth int
	encodeStrict       bool
	encodeOutFile      string

	encodeCmd = &cobra.Command{
		Use:   "encode [file]",
		Short: "Convert JSON or YAML into TOON",
		Long:  "Reads JSON or YAML from a file (or stdin, with no argument or \"-\") and writes the equivalent TOON document to stdout.",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logrus.StandardLogger()

			data, err := readInput(args)
			if err != nil {
				return err
			}

			cfg, err := LoadRCConfig(configDir)
			if err != nil {
				return fmt.Errorf("loading .toonrc: %w", err)
			}
			opts := cfg.encodeOptions()
			if cmd.Flags().Changed("delimiter") {
				d, err := parseDelimiter(encodeDelimiter)
				if err != nil {
					return err
				}
				opts.Delimiter = d
			}
			if cmd.Flags().Changed("indent") {
				opts.Indent = tooner.IndentWidth(encodeIndent).Indent
			}
			if cmd.Flags().Changed("fold-keys") {
				if encodeKeyFold {
					opts.KeyFolding = tooner.KeyFoldingSafe
				} else {
					opts.KeyFolding = tooner.KeyFoldingOff
				}
			}
			if cmd.Flags().Changed("flatten-depth") {
				opts.FlattenDepth = encodeFlattenDepth
			}
			if cmd.Flags().Changed("strict") {
				opts.Strict = encodeStrict
			}

			var (
				value tooner.Value
				ferr  error
			)
			switch encodeFrom {
			case "json":
				value, ferr = toonfmt.FromJSON(data)
			case "yaml":
				value, ferr = toonfmt.FromYAML(data)
			default:
				return fmt.Errorf("unknown --from format %q (want json or yaml)", encodeFrom)
			}
			if ferr != nil {
				return ferr
			}

			text, err := tooner.Encode(value, opts)
			if err != nil {
				return err
			}
			logger.Debugf("encoded %d bytes of %s into %d bytes of toon", len(data), encodeFrom, len(text))
			return writeOutput(encodeOutFile, []byte(text+"\n"))
		},
	}
)

func readInput(args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(args[0])
}

func writeOutput(file string, data []byte) error {
	if file == "" || file == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(file, data, 0o644)
}

func init() {
	encodeCmd.Flags().StringVar(&encodeFrom, "from", "json", "source format: json or yaml")
	encodeCmd.Flags().StringVar(&encodeDelimiter, "delimiter", ",", "array/row delimiter: , \\t or |")
	encodeCmd.Flags().IntVar(&encodeIndent, "indent", tooner.DefaultIndentWidth, "indent width in spaces")
	encodeCmd.Flags().BoolVar(&encodeKeyFold, "fold-keys", false, "fold chains of single-key objects into dotted keys")
	encodeCmd.Flags().IntVar(&encodeFlattenDepth, "flatten-depth", 0, "max depth fold-keys collapses (0 means unbounded)")
	encodeCmd.Flags().BoolVar(&encodeStrict, "strict", false, "no effect on encoding; NaN and Infinity are always rejected")
	encodeCmd.Flags().StringVarP(&encodeOutFile, "output", "o", "-", "output file, or - for stdout")
	rootCmd.AddCommand(encodeCmd)
}
