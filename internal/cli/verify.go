package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/sigil/internal/ir"
	"github.com/roach88/sigil/internal/printer"
	"github.com/roach88/sigil/internal/store"
	"github.com/roach88/sigil/internal/verify"
)

// VerifyResult holds the verification outcome for one file.
type VerifyResult struct {
	Valid  bool          `json:"valid"`
	Graphs int           `json:"graphs"`
	Cached int           `json:"cached,omitempty"`
	Errors []diagPayload `json:"errors,omitempty"`
}

func (r VerifyResult) String() string {
	if r.Valid {
		return fmt.Sprintf("ok: %d graph(s) verified", r.Graphs)
	}
	return fmt.Sprintf("invalid: %d error(s)", len(r.Errors))
}

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	var cachePath string

	cmd := &cobra.Command{
		Use:   "verify <file>",
		Short: "Verify that every node's stored types match inference",
		Long: `Verify an assembly file.

Every node's stored result types are checked against what inference
computes from its operands; all violations are reported, not just the
first. With --cache, verdicts are stored in a SQLite database keyed by
each graph's content fingerprint, and unchanged graphs are skipped.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(rootOpts, args[0], cachePath, cmd)
		},
	}
	cmd.Flags().StringVar(&cachePath, "cache", "", "path to the verdict cache database")
	return cmd
}

func runVerify(opts *RootOptions, path, cachePath string, cmd *cobra.Command) error {
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

	var cache *store.Store
	if cachePath != "" {
		cache, err = store.Open(cachePath)
		if err != nil {
			if ferr := formatter.Error("E000", err.Error(), nil); ferr != nil {
				return ferr
			}
			return WrapExitError(ExitCommandError, "open cache", err)
		}
		defer cache.Close()
	}

	result := VerifyResult{Valid: true, Graphs: len(graphs)}
	var all []*ir.Diagnostic
	for _, g := range graphs {
		diags, cached, err := verifyGraph(cmd, formatter, cache, g)
		if err != nil {
			return err
		}
		if cached {
			result.Cached++
		}
		all = append(all, diags...)
	}

	if len(all) > 0 {
		result.Valid = false
		result.Errors = toPayload(all)
		if err := formatter.Error(all[0].Code, result.String(), result.Errors); err != nil {
			return err
		}
		return NewExitError(ExitFailure, result.String())
	}
	return formatter.Success(result)
}

func verifyGraph(cmd *cobra.Command, formatter *OutputFormatter, cache *store.Store, g *ir.Graph) ([]*ir.Diagnostic, bool, error) {
	if cache == nil {
		return verify.Graph(g), false, nil
	}

	hash := printer.Fingerprint(g)
	if v, found, err := cache.Lookup(cmd.Context(), hash); err != nil {
		return nil, false, WrapExitError(ExitCommandError, "cache lookup", err)
	} else if found {
		formatter.VerboseLog("graph @%s: cache hit (%s)", g.Name, hash[:12])
		return v.Diagnostics, true, nil
	}

	diags := verify.Graph(g)
	verdict := &store.Verdict{
		GraphHash:   hash,
		GraphName:   g.Name,
		OK:          len(diags) == 0,
		Diagnostics: diags,
	}
	if err := cache.Record(cmd.Context(), verdict); err != nil {
		return nil, false, WrapExitError(ExitCommandError, "cache record", err)
	}
	formatter.VerboseLog("graph @%s: verified and cached (%s)", g.Name, hash[:12])
	return diags, false, nil
}
