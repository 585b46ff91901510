package compat

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// GnuTLS selects algorithms through a priority string. A canonical
// identifier can expand to several tokens: a ciphersuite becomes a
// (cipher, hash, mode) triple.

var gnutlsCipherSuites = map[string][]string{
	"TLS_AES_256_GCM_SHA384":       {"AES-256-GCM", "SHA384", "AEAD"},
	"TLS_AES_128_GCM_SHA256":       {"AES-128-GCM", "SHA256", "AEAD"},
	"TLS_CHACHA20_POLY1305_SHA256": {"CHACHA20-POLY1305", "SHA256", "AEAD"},
	"TLS_AES_128_CCM_SHA256":       {"AES-128-CCM", "SHA256", "AEAD"},
	"TLS_AES_128_CCM_8_SHA256":     {"AES-128-CCM-8", "SHA256", "AEAD"},
}

var gnutlsSignatureAlgorithms = map[string][]string{
	"ecdsa_secp256r1_sha256": {"SIGN-ECDSA-SECP256R1-SHA256"},
	"ecdsa_secp521r1_sha512": {"SIGN-ECDSA-SECP521R1-SHA512"},
	"ecdsa_secp384r1_sha384": {"SIGN-ECDSA-SECP384R1-SHA384"},
	"rsa_pss_rsae_sha256":    {"SIGN-RSA-PSS-RSAE-SHA256"},
}

var gnutlsNamedGroups = map[string][]string{
	"secp256r1": {"GROUP-SECP256R1"},
	"secp384r1": {"GROUP-SECP384R1"},
	"secp521r1": {"GROUP-SECP521R1"},
	"x25519":    {"GROUP-X25519"},
	"x448":      {"GROUP-X448"},
}

// GnuTLSCipherSuiteTokens returns GnuTLS's priority-string tokens for a
// canonical ciphersuite.
func GnuTLSCipherSuiteTokens(name string) ([]string, error) {
	tokens, ok := gnutlsCipherSuites[name]
	if !ok {
		return nil, &UnknownIdentifierError{Kind: "ciphersuite", Name: name}
	}
	return slices.Clone(tokens), nil
}

// GnuTLSSignatureAlgorithmTokens returns GnuTLS's priority-string tokens for
// a canonical signature algorithm.
func GnuTLSSignatureAlgorithmTokens(name string) ([]string, error) {
	tokens, ok := gnutlsSignatureAlgorithms[name]
	if !ok {
		return nil, &UnknownIdentifierError{Kind: "signature algorithm", Name: name}
	}
	return slices.Clone(tokens), nil
}

// GnuTLSNamedGroupTokens returns GnuTLS's priority-string tokens for a
// canonical named group.
func GnuTLSNamedGroupTokens(name string) ([]string, error) {
	tokens, ok := gnutlsNamedGroups[name]
	if !ok {
		return nil, &UnknownIdentifierError{Kind: "named group", Name: name}
	}
	return slices.Clone(tokens), nil
}

// GnuTLSServer generates test commands for a GnuTLS server endpoint.
type GnuTLSServer struct {
	selection
}

func newGnuTLSServer(p Params) *GnuTLSServer {
	return &GnuTLSServer{selection: newSelection(p)}
}

func (s *GnuTLSServer) Preconditions() []string {
	return []string{
		"requires_gnutls_tls1_3",
		"requires_gnutls_next_no_ticket",
		"requires_gnutls_next_disable_tls13_compat",
	}
}

func (s *GnuTLSServer) Command() (string, error) {
	certSigAlgs := s.effectiveCertSigAlgs()

	args := []string{"$G_NEXT_SRV_NO_CERT", "--http", "--disable-client-cert", "--debug=4"}
	for _, sigAlg := range certSigAlgs {
		profile, err := CertificateProfileFor(sigAlg)
		if err != nil {
			return "", err
		}
		args = append(args, fmt.Sprintf("--x509certfile %s --x509keyfile %s", profile.CertFile, profile.KeyFile))
	}

	var priority []string
	if s.hrr {
		priority = append(priority, "CIPHER-ALL", "SIGN-ALL", "MAC-ALL")
	} else {
		if len(s.ciphers) > 0 {
			for _, cipher := range s.ciphers {
				tokens, err := GnuTLSCipherSuiteTokens(cipher)
				if err != nil {
					return "", err
				}
				priority = appendUnique(priority, tokens...)
			}
		} else {
			priority = append(priority, "CIPHER-ALL")
		}

		if len(s.sigAlgs) > 0 {
			for _, sigAlg := range s.mergedSignatureAlgorithms(certSigAlgs) {
				tokens, err := GnuTLSSignatureAlgorithmTokens(sigAlg)
				if err != nil {
					return "", err
				}
				priority = appendUnique(priority, tokens...)
			}
		} else {
			priority = append(priority, "SIGN-ALL")
		}
	}

	if len(s.namedGroups) > 0 {
		for _, group := range s.namedGroups {
			tokens, err := GnuTLSNamedGroupTokens(group)
			if err != nil {
				return "", err
			}
			priority = appendUnique(priority, tokens...)
		}
	} else {
		priority = append(priority, "GROUP-ALL")
	}

	sort.Strings(priority)

	parts := append([]string{"NONE"}, priority...)
	parts = append(parts, "VERS-TLS1.3")
	priorityString := strings.Join(parts, ":+") + ":%NO_TICKETS"
	if !s.compatMode {
		priorityString += ":%DISABLE_TLS13_COMPAT_MODE"
	}

	args = append(args, "--priority="+priorityString)
	return strings.Join(args, " "), nil
}

func (s *GnuTLSServer) PostChecks() ([]string, error) {
	return []string{`-c "HTTP/1.0 200 OK"`}, nil
}
