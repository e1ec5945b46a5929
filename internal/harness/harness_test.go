package harness

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sigil/internal/canon"
)

func TestFixtures(t *testing.T) {
	files, err := filepath.Glob("testdata/fixtures/*.sigil")
	require.NoError(t, err)
	require.NotEmpty(t, files, "fixture directory must not be empty")

	for _, f := range files {
		name := strings.TrimSuffix(filepath.Base(f), ".sigil")
		t.Run(name, func(t *testing.T) {
			res, err := Run(f, canon.DefaultConfig())
			require.NoError(t, err)

			g := goldie.New(t,
				goldie.WithFixtureDir("testdata/golden"),
				goldie.WithNameSuffix(".golden"),
			)
			g.Assert(t, name, res.Snapshot())
		})
	}
}

func TestRun_MissingFile(t *testing.T) {
	_, err := Run(filepath.Join(t.TempDir(), "nope.sigil"), canon.DefaultConfig())
	require.Error(t, err)
}

func TestRun_DiagnosticsSkipCanon(t *testing.T) {
	res, err := Run("testdata/fixtures/illtyped.sigil", canon.DefaultConfig())
	require.NoError(t, err)
	assert.NotEmpty(t, res.Diagnostics)
	assert.Empty(t, res.Canonical, "ill-typed input is never canonicalized")
}

func TestRun_CanonPreservesCleanInput(t *testing.T) {
	res, err := Run("testdata/fixtures/adder.sigil", canon.DefaultConfig())
	require.NoError(t, err)
	assert.Empty(t, res.Diagnostics)
	assert.Equal(t, res.Parsed, res.Canonical, "nothing to rewrite in a canonical graph")
	assert.Zero(t, res.Steps)
}
