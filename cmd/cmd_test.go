package cmd

import (
	"bytes"
	"testing"
)

// executeCommand runs the root command with args and returns everything
// written to stdout/stderr.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

// resetGenerateFlags restores the generate command's bound flag variables,
// which persist between executions in the same process.
func resetGenerateFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		generateOutput = ""
		generateAll = false
		generateConfigPath = ""
		generateSerial = false
	})
}
