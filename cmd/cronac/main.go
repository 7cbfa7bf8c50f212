// Command cronac is the compiler front end's driver: a binary taking one
// or more source paths and a set of flags selecting which artifacts to
// emit, mirroring the original driver's flag shape (rather than a
// subcommand-per-action CLI) while allowing more than one path per
// invocation as a convenience the original single-file driver lacked.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "cronac <path>...",
		Short: "cronac compiles one or more source files through scanning, parsing, name analysis, type checking, and 3AC lowering",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPaths(cmd, args, opts)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&opts.tokensPath, "t", "", "write the token stream to path (-- for stdout)")
	cmd.Flags().BoolVar(&opts.parseOnly, "p", false, "parse only")
	cmd.Flags().StringVar(&opts.unparsePath, "u", "", "write a canonical unparse of the AST to path (-- for stdout)")
	cmd.Flags().StringVar(&opts.namesPath, "n", "", "run name analysis, then unparse with symbol annotations to path (-- for stdout)")
	cmd.Flags().BoolVar(&opts.check, "c", false, "run type analysis")
	cmd.Flags().StringVar(&opts.irPath, "a", "", "write the 3AC IR to path (-- for stdout)")

	cmd.PersistentFlags().StringVar(&opts.color, "color", "auto", "colorize diagnostics (auto|on|off)")
	cmd.PersistentFlags().BoolVar(&opts.quiet, "quiet", false, "suppress the non-diagnostic banner")
	cmd.PersistentFlags().StringVar(&opts.cacheDir, "cache-dir", "", "override the disk cache directory for -a output")

	return cmd
}
