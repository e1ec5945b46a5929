package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/sigil/internal/printer"
)

// NewParseCommand creates the parse command.
func NewParseCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse an assembly file and print its canonical text",
		Long: `Parse an assembly file and print the canonical printed form.

The printed form is deterministic: feeding the output back into parse
reproduces it byte for byte. Parsing alone does not type-check; use
verify for that.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runParse(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	graphs, err := loadGraphs(formatter, path)
	if err != nil {
		return err
	}
	for _, g := range graphs {
		formatter.VerboseLog("graph @%s: %s", g.Name, printer.Fingerprint(g))
	}
	return formatter.Text(printer.PrintAll(graphs))
}
