package keyring

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKeyring(t *testing.T) (*KeyRing, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "keyring.json")
	kr, err := Open(path)
	require.NoError(t, err)
	return kr, path
}

func TestParseKeyName(t *testing.T) {
	k, err := ParseKeyName("shodan:api")
	require.NoError(t, err)
	assert.Equal(t, "shodan", k.Namespace)
	assert.Equal(t, "api", k.Name)
	assert.Equal(t, "shodan:api", k.String())
}

func TestParseKeyName_NameMayContainColon(t *testing.T) {
	k, err := ParseKeyName("aws:AKIA:extra")
	require.NoError(t, err)
	assert.Equal(t, "aws", k.Namespace)
	assert.Equal(t, "AKIA:extra", k.Name)
}

func TestParseKeyName_Invalid(t *testing.T) {
	for _, s := range []string{"", "noseparator", ":name", "namespace:", ":"} {
		_, err := ParseKeyName(s)
		assert.Error(t, err, "input %q", s)
	}
}

func TestKeyRing_InsertGetDelete(t *testing.T) {
	kr, _ := testKeyring(t)
	name := KeyName{Namespace: "shodan", Name: "api"}

	assert.Nil(t, kr.Get(name))

	secret := "s3cr3t"
	require.NoError(t, kr.Insert(name, &secret))

	key := kr.Get(name)
	require.NotNil(t, key)
	require.NotNil(t, key.Secret)
	assert.Equal(t, "s3cr3t", *key.Secret)

	require.NoError(t, kr.Delete(name))
	assert.Nil(t, kr.Get(name))

	// Deleting again is a no-op.
	require.NoError(t, kr.Delete(name))
}

func TestKeyRing_SecretOptional(t *testing.T) {
	kr, _ := testKeyring(t)
	name := KeyName{Namespace: "censys", Name: "token"}

	require.NoError(t, kr.Insert(name, nil))

	key := kr.Get(name)
	require.NotNil(t, key)
	assert.Nil(t, key.Secret)
}

func TestKeyRing_Persists(t *testing.T) {
	kr, path := testKeyring(t)
	secret := "s3cr3t"
	require.NoError(t, kr.Insert(KeyName{Namespace: "shodan", Name: "api"}, &secret))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	reopened, err := Open(path)
	require.NoError(t, err)
	key := reopened.Get(KeyName{Namespace: "shodan", Name: "api"})
	require.NotNil(t, key)
	require.NotNil(t, key.Secret)
	assert.Equal(t, "s3cr3t", *key.Secret)
}

func TestKeyRing_List(t *testing.T) {
	kr, _ := testKeyring(t)
	for _, s := range []string{"shodan:api", "censys:token", "censys:id"} {
		name, err := ParseKeyName(s)
		require.NoError(t, err)
		require.NoError(t, kr.Insert(name, nil))
	}

	names := kr.List()
	require.Len(t, names, 3)
	assert.Equal(t, "censys:id", names[0].String())
	assert.Equal(t, "censys:token", names[1].String())
	assert.Equal(t, "shodan:api", names[2].String())

	censys := kr.ListFor("censys")
	require.Len(t, censys, 2)
	assert.Equal(t, "censys:id", censys[0].String())

	assert.Empty(t, kr.ListFor("missing"))
}
