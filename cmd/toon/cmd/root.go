package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:          "toon",
		Short:        "toon",
		SilenceUsage: true,
		Long:         `Convert between TOON (Token-Oriented Object Notation) and JSON/YAML.`,
	}

	configDir string
	verbose   bool
)

// Execute executes the root command.
func Execute() error {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "directory to look for .toonrc in")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(func() {
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	})
}
