package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spyglass-osint/spyglass/internal/filter"
	"github.com/spyglass-osint/spyglass/internal/models"
	"github.com/spyglass-osint/spyglass/internal/paths"
)

// runCLI executes the root command against the data dir selected via
// SPYGLASS_DATA_DIR and returns captured stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--quiet"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func setupDataDir(t *testing.T) {
	t.Helper()
	t.Setenv(paths.EnvDataDir, t.TempDir())
	t.Setenv("SPYGLASS_LOG_LEVEL", "error")
}

func TestRoot_InvalidFormat(t *testing.T) {
	setupDataDir(t)
	_, err := runCLI(t, "--format", "xml", "select", "domain")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestSelect_UnknownFamily(t *testing.T) {
	setupDataDir(t)
	_, err := runCLI(t, "select", "bogus")
	assert.ErrorIs(t, err, models.ErrUnknownFamily)
}

func TestScope_RequiresWhere(t *testing.T) {
	setupDataDir(t)
	_, err := runCLI(t, "scope", "domains", "value=1")
	assert.ErrorIs(t, err, filter.ErrSyntax)
}

func TestAdd_InvalidValues(t *testing.T) {
	setupDataDir(t)

	_, err := runCLI(t, "add", "ipaddr", "not-an-ip")
	assert.Error(t, err)

	_, err = runCLI(t, "add", "phonenumber", "0123456")
	assert.Error(t, err)
}

func TestAddSelectScopeDelete(t *testing.T) {
	setupDataDir(t)

	out, err := runCLI(t, "add", "domain", "example.com")
	require.NoError(t, err)
	assert.Equal(t, "Added \"example.com\"\n", out)

	out, err = runCLI(t, "add", "domain", "example.com")
	require.NoError(t, err)
	assert.Equal(t, "Unchanged \"example.com\"\n", out)

	out, err = runCLI(t, "select", "domain")
	require.NoError(t, err)
	assert.Equal(t, "example.com\n", out)

	out, err = runCLI(t, "noscope", "domains", "where", "value=example.com")
	require.NoError(t, err)
	assert.Equal(t, "Updated 1 rows\n", out)

	// Excluded rows are invisible to reads and sticky against re-adding.
	out, err = runCLI(t, "select", "domain")
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = runCLI(t, "add", "domain", "example.com")
	require.NoError(t, err)
	assert.Equal(t, "Not adding \"example.com\", value is out of scope\n", out)

	out, err = runCLI(t, "scope", "domains", "where", "value=example.com")
	require.NoError(t, err)
	assert.Equal(t, "Updated 1 rows\n", out)

	out, err = runCLI(t, "delete", "domain", "where", "value=example.com")
	require.NoError(t, err)
	assert.Equal(t, "Deleted 1 rows\n", out)

	out, err = runCLI(t, "select", "domain")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestSelect_JSON(t *testing.T) {
	setupDataDir(t)

	_, err := runCLI(t, "add", "domain", "example.com")
	require.NoError(t, err)

	out, err := runCLI(t, "--format", "json", "select", "domain")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"value":"example.com","unscoped":false}`, out)
}

func TestWorkspacesAreIsolated(t *testing.T) {
	setupDataDir(t)

	_, err := runCLI(t, "-w", "alpha", "add", "domain", "example.com")
	require.NoError(t, err)

	out, err := runCLI(t, "-w", "beta", "select", "domain")
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = runCLI(t, "-w", "alpha", "select", "domain")
	require.NoError(t, err)
	assert.Equal(t, "example.com\n", out)
}

func TestWorkspace_InvalidName(t *testing.T) {
	setupDataDir(t)

	_, err := runCLI(t, "-w", "../escape", "select", "domain")
	assert.Error(t, err)
}

func TestKeyringCommands(t *testing.T) {
	setupDataDir(t)

	_, err := runCLI(t, "keyring", "add", "shodan:api", "s3cr3t")
	require.NoError(t, err)

	out, err := runCLI(t, "keyring", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "shodan:api")

	out, err = runCLI(t, "keyring", "get", "--secret-only", "shodan:api")
	require.NoError(t, err)
	assert.Equal(t, "s3cr3t\n", out)

	_, err = runCLI(t, "keyring", "delete", "shodan:api")
	require.NoError(t, err)

	out, err = runCLI(t, "keyring", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "shodan:api")
}
