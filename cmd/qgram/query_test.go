package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"citysuggest/internal/testutil"
)

func runRoot(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

func writeCities(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cities.tsv")
	require.NoError(t, os.WriteFile(path, []byte(testutil.Cities), 0o600))
	return path
}

func TestQueryCmd_RequiresExactlyOneArg(t *testing.T) {
	_, err := runRoot(t, "", "query")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestQueryCmd_HasLimitFlag(t *testing.T) {
	flag := queryCmd.Flags().Lookup("k")
	require.NotNil(t, flag)
	assert.Equal(t, "5", flag.DefValue)
}

func TestQueryCmd_PrintsMatches(t *testing.T) {
	out, err := runRoot(t, "frei\nexit\nberlin\n", "query", writeCities(t))
	require.NoError(t, err)

	assert.Contains(t, out, "reading...")
	assert.Contains(t, out, "query : ")
	assert.Contains(t, out, "[computed 3 peds]")
	assert.Contains(t, out, "Freiburg\tGermany (rating = 0.333333)")
	assert.NotContains(t, out, "Berlin")
}

func TestQueryCmd_EndOfInput(t *testing.T) {
	out, err := runRoot(t, "xyzzy\n", "query", writeCities(t))
	require.NoError(t, err)

	assert.Contains(t, out, "[computed 0 peds]")
}

func TestQueryCmd_MissingFile(t *testing.T) {
	_, err := runRoot(t, "", "query", filepath.Join(t.TempDir(), "missing.tsv"))

	assert.ErrorContains(t, err, "failed to open city file")
}

func TestImportCmd_RequiresDatabaseURL(t *testing.T) {
	importDatabaseURL = ""
	_, err := runRoot(t, "", "import", writeCities(t))

	assert.ErrorContains(t, err, "database url is required")
}
