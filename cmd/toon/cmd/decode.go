package cmd

import (
	"fmt"

	"github.com/dwekat/tooner"
	"github.com/dwekat/tooner/toonfmt"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	decodeTo          string
	decodeStrict      bool
	decodeIndent      int
	decodeExpandPaths bool
	decodeOutFile     string

	decodeCmd = &cobra.Command{
		Use:   "decode [file]",
		Short: "Convert TOON into JSON or YAML",
		Long:  "Reads a TOON document from a file (or stdin, with no argument or \"-\") and writes the equivalent JSON or YAML to stdout.",
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
			opts := cfg.decodeOptions()
			if cmd.Flags().Changed("strict") {
				opts.Strict = decodeStrict
			}
			if cmd.Flags().Changed("indent") {
				opts.Indent = decodeIndent
			}
			if cmd.Flags().Changed("expand-paths") {
				if decodeExpandPaths {
					opts.ExpandPaths = tooner.ExpandPathsSafe
				} else {
					opts.ExpandPaths = tooner.ExpandPathsOff
				}
			}

			value, err := tooner.Decode(string(data), opts)
			if err != nil {
				return err
			}

			var out []byte
			switch decodeTo {
			case "json":
				out, err = toonfmt.ToJSON(value, "  ")
			case "yaml":
				out, err = toonfmt.ToYAML(value)
			default:
				return fmt.Errorf("unknown --to format %q (want json or yaml)", decodeTo)
			}
			if err != nil {
				return err
			}
			if decodeTo == "json" {
				out = append(out, '\n')
			}
			logger.Debugf("decoded %d bytes of toon into %d bytes of %s", len(data), len(out), decodeTo)
			return writeOutput(decodeOutFile, out)
		},
	}
)

func init() {
	decodeCmd.Flags().StringVar(&decodeTo, "to", "json", "target format: json or yaml")
	decodeCmd.Flags().BoolVar(&decodeStrict, "strict", false, "enable strict validation")
	decodeCmd.Flags().IntVar(&decodeIndent, "indent", tooner.DefaultIndentWidth, "expected indent width for strict validation")
	decodeCmd.Flags().BoolVar(&decodeExpandPaths, "expand-paths", false, "expand dotted unquoted keys into nested objects")
	decodeCmd.Flags().StringVarP(&decodeOutFile, "output", "o", "-", "output file, or - for stdout")
	rootCmd.AddCommand(decodeCmd)
}
