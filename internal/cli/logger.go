package cli

import (
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

// newLogger returns a logger on the command's stderr. Debug output is
// enabled by --verbose; otherwise only warnings and errors are shown.
func newLogger(cmd *cobra.Command) hclog.Logger {
	level := hclog.Warn
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "favicon",
		Output: cmd.ErrOrStderr(),
		Level:  level,
	})
}
