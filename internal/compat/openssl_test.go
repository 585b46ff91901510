package compat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSSLServerCommand(t *testing.T) {
	srv, err := NewServer("OpenSSL", Params{
		CipherSuite:            "TLS_AES_128_GCM_SHA256",
		SignatureAlgorithm:     "ecdsa_secp256r1_sha256",
		NamedGroup:             "secp256r1",
		CertSignatureAlgorithm: "ecdsa_secp256r1_sha256",
	})
	require.NoError(t, err)

	command, err := srv.Command()
	require.NoError(t, err)
	assert.Equal(t,
		"$O_NEXT_SRV_NO_CERT"+
			" -cert data_files/ecdsa_secp256r1.crt -key data_files/ecdsa_secp256r1.key"+
			" -accept $SRV_PORT"+
			" -ciphersuites TLS_AES_128_GCM_SHA256"+
			" -sigalgs ecdsa_secp256r1_sha256"+
			" -groups P-256"+
			" -msg -tls1_3 -num_tickets 0 -no_resume_ephemeral -no_cache",
		command)
}

func TestOpenSSLServerMergesSignatureSets(t *testing.T) {
	srv, err := NewServer("OpenSSL", Params{
		CipherSuite:            "TLS_AES_128_GCM_SHA256",
		SignatureAlgorithm:     "rsa_pss_rsae_sha256",
		NamedGroup:             "x25519",
		CertSignatureAlgorithm: "ecdsa_secp256r1_sha256",
	})
	require.NoError(t, err)

	command, err := srv.Command()
	require.NoError(t, err)
	// Sorted, deduplicated union of negotiated and certificate signatures.
	assert.Contains(t, command, "-sigalgs ecdsa_secp256r1_sha256:rsa_pss_rsae_sha256")
}

func TestOpenSSLServerHRRWidensCipherAndSignature(t *testing.T) {
	srv, err := NewServer("OpenSSL", Params{
		CipherSuite:        "TLS_AES_256_GCM_SHA384",
		SignatureAlgorithm: "ecdsa_secp384r1_sha384",
		NamedGroup:         "secp384r1",
		PeerNamedGroup:     "x25519",
		HRR:                true,
	})
	require.NoError(t, err)

	command, err := srv.Command()
	require.NoError(t, err)
	assert.NotContains(t, command, "-ciphersuites")
	assert.NotContains(t, command, "-sigalgs")
	assert.Contains(t, command, "-groups P-384")
}

func TestOpenSSLServerCompatModeOff(t *testing.T) {
	srv, err := NewServer("OpenSSL", Params{DisableCompatMode: true})
	require.NoError(t, err)

	command, err := srv.Command()
	require.NoError(t, err)
	assert.Contains(t, command, "-no_middlebox")
}

func TestOpenSSLServerPreconditionsAndChecks(t *testing.T) {
	srv, err := NewServer("OpenSSL", Params{})
	require.NoError(t, err)

	assert.Equal(t, []string{"requires_openssl_tls1_3"}, srv.Preconditions())

	checks, err := srv.PostChecks()
	require.NoError(t, err)
	assert.Equal(t, []string{`-c "HTTP/1.0 200 ok"`}, checks)
}

func TestOpenSSLNamedGroupOrderingPreserved(t *testing.T) {
	srv, err := NewServer("OpenSSL", Params{NamedGroup: "x448"})
	require.NoError(t, err)
	srv.AddNamedGroups("secp256r1", "x25519")

	command, err := srv.Command()
	require.NoError(t, err)
	assert.Contains(t, command, "-groups X448:P-256:X25519")
}
