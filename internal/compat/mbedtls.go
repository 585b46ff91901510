package compat

import (
	"fmt"
	"slices"
	"strings"
)

// mbedtlsCipherSuites maps canonical ciphersuite names to the spellings
// understood by ssl_client2's force_ciphersuite option.
var mbedtlsCipherSuites = map[string]string{
	"TLS_AES_256_GCM_SHA384":       "TLS1-3-AES-256-GCM-SHA384",
	"TLS_AES_128_GCM_SHA256":       "TLS1-3-AES-128-GCM-SHA256",
	"TLS_CHACHA20_POLY1305_SHA256": "TLS1-3-CHACHA20-POLY1305-SHA256",
	"TLS_AES_128_CCM_SHA256":       "TLS1-3-AES-128-CCM-SHA256",
	"TLS_AES_128_CCM_8_SHA256":     "TLS1-3-AES-128-CCM-8-SHA256",
}

// MbedTLSCipherSuiteName returns mbedTLS's spelling of a canonical
// ciphersuite.
func MbedTLSCipherSuiteName(name string) (string, error) {
	spelling, ok := mbedtlsCipherSuites[name]
	if !ok {
		return "", &UnknownIdentifierError{Kind: "ciphersuite", Name: name}
	}
	return spelling, nil
}

// MbedTLSClient generates test commands for an mbedTLS (ssl_client2) client
// endpoint.
type MbedTLSClient struct {
	selection
}

func newMbedTLSClient(p Params) *MbedTLSClient {
	return &MbedTLSClient{selection: newSelection(p)}
}

func (c *MbedTLSClient) Preconditions() []string {
	checks := []string{
		"requires_config_enabled MBEDTLS_DEBUG_C",
		"requires_config_enabled MBEDTLS_SSL_CLI_C",
		"requires_config_enabled MBEDTLS_SSL_PROTO_TLS1_3",
	}
	if c.compatMode {
		checks = append(checks, "requires_config_enabled MBEDTLS_SSL_TLS1_3_COMPATIBILITY_MODE")
	}
	// RSA-PSS certificate verification needs a dedicated build option.
	all := append(slices.Clone(c.sigAlgs), c.effectiveCertSigAlgs()...)
	if slices.Contains(all, "rsa_pss_rsae_sha256") {
		checks = append(checks, "requires_config_enabled MBEDTLS_X509_RSASSA_PSS_SUPPORT")
	}
	return checks
}

func (c *MbedTLSClient) Command() (string, error) {
	certSigAlgs := c.effectiveCertSigAlgs()

	args := []string{
		"$P_CLI",
		"server_addr=127.0.0.1", "server_port=$SRV_PORT",
		"debug_level=4", "force_version=tls13",
	}

	profile, err := CertificateProfileFor(certSigAlgs[0])
	if err != nil {
		return "", err
	}
	args = append(args, "ca_file="+profile.CAFile)

	if !c.hrr {
		if len(c.ciphers) > 0 {
			ciphers := make([]string, 0, len(c.ciphers))
			for _, cipher := range c.ciphers {
				spelling, err := MbedTLSCipherSuiteName(cipher)
				if err != nil {
					return "", err
				}
				ciphers = append(ciphers, spelling)
			}
			args = append(args, "force_ciphersuite="+strings.Join(ciphers, ","))
		}

		if merged := c.mergedSignatureAlgorithms(certSigAlgs); len(merged) > 0 {
			args = append(args, "sig_algs="+strings.Join(merged, ","))
		}
	}

	if groups := c.advertisedGroups(); len(groups) > 0 {
		args = append(args, "curves="+strings.Join(groups, ","))
	}

	return strings.Join(args, " "), nil
}

// advertisedGroups resolves the named group list offered in the first
// ClientHello. For HRR the list is exactly (initial group, peer's eventual
// group): the leading group is one the server will reject, forcing the retry
// that settles on the trailing one.
func (c *MbedTLSClient) advertisedGroups() []string {
	groups := slices.Clone(c.namedGroups)
	if c.hrr && len(groups) > 0 && c.peerNamedGroup != "" {
		groups = appendUnique(groups, c.peerNamedGroup)
	}
	return groups
}

func (c *MbedTLSClient) PostChecks() ([]string, error) {
	var checks []string

	if len(c.ciphers) > 0 {
		code, err := CipherSuiteIANA(c.ciphers[0])
		if err != nil {
			return nil, err
		}
		spelling, err := MbedTLSCipherSuiteName(c.ciphers[0])
		if err != nil {
			return nil, err
		}
		checks = append(checks,
			fmt.Sprintf("server hello, chosen ciphersuite: ( %04x ) - %s", code, spelling))
	}

	if len(c.sigAlgs) > 0 {
		code, err := SignatureAlgorithmIANA(c.sigAlgs[0])
		if err != nil {
			return nil, err
		}
		checks = append(checks,
			fmt.Sprintf("Certificate Verify: Signature algorithm ( %04x )", code))
	}

	for _, group := range c.namedGroups {
		code, err := NamedGroupIANA(group)
		if err != nil {
			return nil, err
		}
		checks = append(checks, fmt.Sprintf("NamedGroup: %s ( %x )", group, code))
	}

	checks = append(checks, "Verifying peer X.509 certificate... ok")
	return quoteChecks(checks), nil
}

func (c *MbedTLSClient) PostHRRChecks() ([]string, error) {
	groups := c.advertisedGroups()
	if len(groups) < 2 {
		return nil, &InvalidCombinationError{ClientGroup: c.peerNamedGroup, ServerGroup: c.peerNamedGroup}
	}
	checks := []string{
		"NamedGroup: " + groups[0],
		"NamedGroup: " + groups[len(groups)-1],
		"<= ssl_tls13_process_server_hello ( HelloRetryRequest )",
		"Verifying peer X.509 certificate... ok",
	}
	return quoteChecks(checks), nil
}

func quoteChecks(checks []string) []string {
	quoted := make([]string, 0, len(checks))
	for _, check := range checks {
		quoted = append(quoted, fmt.Sprintf(`-c "%s"`, check))
	}
	return quoted
}
