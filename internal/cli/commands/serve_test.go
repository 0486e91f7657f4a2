package commands

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/newsroom/internal/cli/config"
)

func execServe(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	config.ResetConfig()

	oldWd, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	defer func() { _ = os.Chdir(oldWd) }()

	cmd := NewServeCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func TestNewServeCommand(t *testing.T) {
	cmd := NewServeCommand()

	assert.Equal(t, "serve", cmd.Use)
	assert.Contains(t, cmd.Short, "preview server")

	portFlag := cmd.Flags().Lookup("port")
	require.NotNil(t, portFlag)
	assert.Equal(t, "0", portFlag.DefValue)

	noWatchFlag := cmd.Flags().Lookup("no-watch")
	require.NotNil(t, noWatchFlag)
	assert.Equal(t, "false", noWatchFlag.DefValue)

	noBrowserFlag := cmd.Flags().Lookup("no-browser")
	require.NotNil(t, noBrowserFlag)
	assert.Equal(t, "false", noBrowserFlag.DefValue)
}

func TestServeCommand_MissingNewsDir(t *testing.T) {
	dir := t.TempDir()

	_, err := execServe(t, dir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "news directory does not exist")
}
