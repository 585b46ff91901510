package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSingleCaseDefaults(t *testing.T) {
	resetGenerateFlags(t)

	out, err := executeCommand(t, "generate")
	require.NoError(t, err)

	assert.Contains(t, out,
		`run_test "TLS 1.3 m->O: TLS_AES_128_GCM_SHA256,secp256r1,ecdsa_secp256r1_sha256"`)
	assert.Contains(t, out, "force_ciphersuite=TLS1-3-AES-128-GCM-SHA256")
	assert.Contains(t, out, `-C "received HelloRetryRequest message"`)
	assert.True(t, strings.HasPrefix(out, "requires_openssl_tls1_3\n"))
}

func TestGenerateExplicitTuple(t *testing.T) {
	resetGenerateFlags(t)

	out, err := executeCommand(t, "generate", "GnuTLS", "mbedTLS", "TLS_AES_256_GCM_SHA384")
	require.NoError(t, err)

	assert.Contains(t, out,
		`run_test "TLS 1.3 m->G: TLS_AES_256_GCM_SHA384,secp256r1,ecdsa_secp256r1_sha256"`)
	assert.Contains(t, out, "$G_NEXT_SRV_NO_CERT")
}

func TestGenerateRejectsUnknownImplementation(t *testing.T) {
	resetGenerateFlags(t)

	_, err := executeCommand(t, "generate", "BoringSSL")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid server implementation")
	assert.Equal(t, ExitCodeUnknownIdentifier, getExitCode(err))
}

func TestGenerateRejectsUnknownCipher(t *testing.T) {
	resetGenerateFlags(t)

	_, err := executeCommand(t, "generate", "OpenSSL", "mbedTLS", "TLS_RSA_WITH_RC4_128_SHA")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid ciphersuite")
}

func TestGenerateAllToStdoutHasNoHeader(t *testing.T) {
	resetGenerateFlags(t)

	out, err := executeCommand(t, "generate", "-a")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "requires_openssl_tls1_3\n"))
	assert.Equal(t, 240, strings.Count(out, "run_test "))
}

func TestGenerateAllToFileHasHeader(t *testing.T) {
	resetGenerateFlags(t)

	path := filepath.Join(t.TempDir(), "tls13-compat.sh")
	_, err := executeCommand(t, "generate", "-a", "-o", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.True(t, strings.HasPrefix(out, "#!/bin/sh\n"))
	assert.Contains(t, out, "# tls13-compat.sh")
	assert.Equal(t, 240, strings.Count(out, "run_test "))
	assert.True(t, strings.HasSuffix(out, "\n"))
}
