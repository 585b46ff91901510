package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetListFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		listOutputFormat = "plain"
	})
}

func TestListCiphersPlain(t *testing.T) {
	resetListFlags(t)

	out, err := executeCommand(t, "list", "ciphers")
	require.NoError(t, err)
	assert.Equal(t,
		"TLS_AES_128_GCM_SHA256 TLS_AES_256_GCM_SHA384 TLS_CHACHA20_POLY1305_SHA256"+
			" TLS_AES_128_CCM_SHA256 TLS_AES_128_CCM_8_SHA256\n",
		out)
}

func TestListServersAndClientsPlain(t *testing.T) {
	resetListFlags(t)

	out, err := executeCommand(t, "list", "servers")
	require.NoError(t, err)
	assert.Equal(t, "OpenSSL GnuTLS\n", out)

	out, err = executeCommand(t, "list", "clients")
	require.NoError(t, err)
	assert.Equal(t, "mbedTLS\n", out)
}

func TestListNamedGroupsTable(t *testing.T) {
	resetListFlags(t)

	out, err := executeCommand(t, "list", "named-groups", "-o", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "IANA")
	assert.Contains(t, out, "x25519")
	assert.Contains(t, out, "0x001d")
	assert.Contains(t, out, "X25519")
	assert.Contains(t, out, "GROUP-X25519")
}

func TestListUnknownSet(t *testing.T) {
	resetListFlags(t)

	_, err := executeCommand(t, "list", "bogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown capability set")
}

func TestListUnknownFormat(t *testing.T) {
	resetListFlags(t)

	_, err := executeCommand(t, "list", "ciphers", "-o", "json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}
