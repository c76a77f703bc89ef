package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func executeCommand(t *testing.T, args ...string) string {
	t.Helper()
	// initConfig writes a default config into the working directory when
	// none exists; keep that out of the repo.
	t.Chdir(t.TempDir())

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)

	require.NoError(t, rootCmd.Execute())
	return buf.String()
}

func TestStylesCommand(t *testing.T) {
	out := executeCommand(t, "styles")

	require.Contains(t, out, "vs\n")
	require.Contains(t, out, "monokai\n")
}

func TestLexersCommand(t *testing.T) {
	out := executeCommand(t, "lexers")

	require.Contains(t, out, "Python\n")
	require.Contains(t, out, "Go\n")
}

func TestFormattersCommand(t *testing.T) {
	out := executeCommand(t, "formatters")

	require.Contains(t, out, "rtc\n")
	require.Contains(t, out, "richtext\n")
}

func TestSetVersion(t *testing.T) {
	SetVersion("1.2.3")

	require.Equal(t, "1.2.3", rootCmd.Version)
}
