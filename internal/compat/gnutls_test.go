package compat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGnuTLSServerCommand(t *testing.T) {
	srv, err := NewServer("GnuTLS", Params{
		CipherSuite:            "TLS_AES_128_GCM_SHA256",
		SignatureAlgorithm:     "ecdsa_secp256r1_sha256",
		NamedGroup:             "secp256r1",
		CertSignatureAlgorithm: "ecdsa_secp256r1_sha256",
	})
	require.NoError(t, err)

	command, err := srv.Command()
	require.NoError(t, err)
	assert.Equal(t,
		"$G_NEXT_SRV_NO_CERT --http --disable-client-cert --debug=4"+
			" --x509certfile data_files/ecdsa_secp256r1.crt --x509keyfile data_files/ecdsa_secp256r1.key"+
			" --priority=NONE:+AEAD:+AES-128-GCM:+GROUP-SECP256R1:+SHA256:+SIGN-ECDSA-SECP256R1-SHA256:+VERS-TLS1.3:%NO_TICKETS",
		command)
}

func TestGnuTLSServerPriorityTokensSortedAndDeduplicated(t *testing.T) {
	// Both ciphersuites expand to triples sharing SHA256 and AEAD; the
	// shared tokens appear once and the final list is alphabetical.
	srv, err := NewServer("GnuTLS", Params{
		CipherSuite:            "TLS_AES_128_CCM_SHA256",
		SignatureAlgorithm:     "ecdsa_secp256r1_sha256",
		NamedGroup:             "x25519",
		CertSignatureAlgorithm: "ecdsa_secp256r1_sha256",
	})
	require.NoError(t, err)
	srv.AddCipherSuites("TLS_CHACHA20_POLY1305_SHA256")

	command, err := srv.Command()
	require.NoError(t, err)
	assert.Contains(t, command,
		"--priority=NONE:+AEAD:+AES-128-CCM:+CHACHA20-POLY1305:+GROUP-X25519:+SHA256:+SIGN-ECDSA-SECP256R1-SHA256:+VERS-TLS1.3:%NO_TICKETS")
}

func TestGnuTLSServerHRRWidensCipherAndSignature(t *testing.T) {
	srv, err := NewServer("GnuTLS", Params{
		CipherSuite:        "TLS_AES_256_GCM_SHA384",
		SignatureAlgorithm: "ecdsa_secp384r1_sha384",
		NamedGroup:         "secp384r1",
		PeerNamedGroup:     "x25519",
		HRR:                true,
	})
	require.NoError(t, err)

	command, err := srv.Command()
	require.NoError(t, err)
	assert.Contains(t, command,
		"--priority=NONE:+CIPHER-ALL:+GROUP-SECP384R1:+MAC-ALL:+SIGN-ALL:+VERS-TLS1.3:%NO_TICKETS")
}

func TestGnuTLSServerUnconstrainedSelectionsUseAllTokens(t *testing.T) {
	srv, err := NewServer("GnuTLS", Params{})
	require.NoError(t, err)

	command, err := srv.Command()
	require.NoError(t, err)
	assert.Contains(t, command,
		"--priority=NONE:+CIPHER-ALL:+GROUP-ALL:+SIGN-ALL:+VERS-TLS1.3:%NO_TICKETS")
}

func TestGnuTLSServerCompatModeOff(t *testing.T) {
	srv, err := NewServer("GnuTLS", Params{DisableCompatMode: true})
	require.NoError(t, err)

	command, err := srv.Command()
	require.NoError(t, err)
	assert.Contains(t, command, ":%NO_TICKETS:%DISABLE_TLS13_COMPAT_MODE")
}

func TestGnuTLSServerPreconditionsAndChecks(t *testing.T) {
	srv, err := NewServer("GnuTLS", Params{})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"requires_gnutls_tls1_3",
		"requires_gnutls_next_no_ticket",
		"requires_gnutls_next_disable_tls13_compat",
	}, srv.Preconditions())

	checks, err := srv.PostChecks()
	require.NoError(t, err)
	assert.Equal(t, []string{`-c "HTTP/1.0 200 OK"`}, checks)
}
