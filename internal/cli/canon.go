package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/sigil/internal/canon"
	"github.com/roach88/sigil/internal/printer"
	"github.com/roach88/sigil/internal/verify"
)

// NewCanonCommand creates the canon command.
func NewCanonCommand(rootOpts *RootOptions) *cobra.Command {
	var configPath string
	var outPath string

	cmd := &cobra.Command{
		Use:   "canon <file>",
		Short: "Canonicalize an assembly file and print the result",
		Long: `Canonicalize an assembly file.

The input must verify cleanly; the canonicalizer then folds constants,
flattens concatenations, drops identity ops and forwards wires until a
fixed point, and prints the rewritten graphs. A YAML config can disable
individual rules or change the rewrite step quota.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCanon(rootOpts, args[0], configPath, outPath, cmd)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "YAML rule configuration")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "write output to file instead of stdout")
	return cmd
}

func runCanon(opts *RootOptions, path, configPath, outPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	cfg := canon.DefaultConfig()
	if configPath != "" {
		var err error
		cfg, err = canon.LoadConfig(configPath)
		if err != nil {
			if ferr := formatter.Error("E000", err.Error(), nil); ferr != nil {
				return ferr
			}
			return WrapExitError(ExitCommandError, "load config", err)
		}
	}

	graphs, err := loadGraphs(formatter, path)
	if err != nil {
		return err
	}

	// Canonicalization is only defined on well-typed graphs.
	for _, g := range graphs {
		if diags := verify.Graph(g); len(diags) > 0 {
			if err := formatter.Error(diags[0].Code, diags[0].Error(), toPayload(diags)); err != nil {
				return err
			}
			return NewExitError(ExitFailure, diags[0].Error())
		}
	}

	for _, g := range graphs {
		res, err := canon.Canonicalize(g, cfg)
		if err != nil {
			if ferr := formatter.Error("E000", err.Error(), nil); ferr != nil {
				return ferr
			}
			return WrapExitError(ExitFailure, "canonicalize", err)
		}
		formatter.VerboseLog("graph @%s: %d rewrite step(s)", g.Name, res.Steps)
	}

	text := printer.PrintAll(graphs)
	if outPath != "" {
		if err := os.WriteFile(outPath, []byte(text), 0o644); err != nil {
			return WrapExitError(ExitCommandError, "write output", err)
		}
		formatter.VerboseLog("Wrote %s", outPath)
		return nil
	}
	return formatter.Text(text)
}
