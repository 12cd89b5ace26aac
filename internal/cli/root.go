// Package cli provides the command-line interface for favicon.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/favicon/internal/favicon"
	"github.com/jmylchreest/favicon/internal/ico"
	"github.com/jmylchreest/favicon/internal/version"
)

// NewRootCmd builds the command tree. Running the root command without a
// subcommand writes the icon to favicon.OutputPath.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "favicon",
		Short: "Generate the small site favicon",
		Long: `favicon writes a 16x16, 32-bit icon to ` + favicon.OutputPath + `.

The icon is a filled circle in three shades of blue on a transparent
background. Output is identical on every run.`,
		Version:      version.Short(),
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE:         runGenerate,
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newInspectCmd())
	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
// This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// runGenerate writes the icon and prints one confirmation line.
func runGenerate(cmd *cobra.Command, _ []string) error {
	logger := newLogger(cmd)

	data := favicon.Generate(logger)
	if err := ico.WriteFile(favicon.OutputPath, data); err != nil {
		return err
	}
	logger.Debug("wrote icon", "path", favicon.OutputPath, "bytes", len(data))

	fmt.Fprintf(cmd.OutOrStdout(), "Favicon created: %s\n", favicon.OutputPath)
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
