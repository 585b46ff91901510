package compat

import (
	"fmt"
	"strings"
)

// opensslNamedGroups maps canonical named groups to OpenSSL's -groups
// spellings.
var opensslNamedGroups = map[string]string{
	"secp256r1": "P-256",
	"secp384r1": "P-384",
	"secp521r1": "P-521",
	"x25519":    "X25519",
	"x448":      "X448",
}

// OpenSSLNamedGroup returns OpenSSL's spelling of a canonical named group.
func OpenSSLNamedGroup(name string) (string, error) {
	spelling, ok := opensslNamedGroups[name]
	if !ok {
		return "", &UnknownIdentifierError{Kind: "named group", Name: name}
	}
	return spelling, nil
}

// OpenSSLServer generates test commands for an OpenSSL server endpoint.
type OpenSSLServer struct {
	selection
}

func newOpenSSLServer(p Params) *OpenSSLServer {
	return &OpenSSLServer{selection: newSelection(p)}
}

func (s *OpenSSLServer) Preconditions() []string {
	return []string{"requires_openssl_tls1_3"}
}

func (s *OpenSSLServer) Command() (string, error) {
	certSigAlgs := s.effectiveCertSigAlgs()

	args := []string{"$O_NEXT_SRV_NO_CERT"}
	for _, sigAlg := range certSigAlgs {
		profile, err := CertificateProfileFor(sigAlg)
		if err != nil {
			return "", err
		}
		args = append(args, fmt.Sprintf("-cert %s -key %s", profile.CertFile, profile.KeyFile))
	}
	args = append(args, "-accept $SRV_PORT")

	if !s.hrr {
		if len(s.ciphers) > 0 {
			args = append(args, "-ciphersuites "+strings.Join(s.ciphers, ":"))
		}
		if len(s.sigAlgs) > 0 {
			merged := s.mergedSignatureAlgorithms(certSigAlgs)
			args = append(args, "-sigalgs "+strings.Join(merged, ":"))
		}
	}

	if len(s.namedGroups) > 0 {
		groups := make([]string, 0, len(s.namedGroups))
		for _, group := range s.namedGroups {
			spelling, err := OpenSSLNamedGroup(group)
			if err != nil {
				return "", err
			}
			groups = append(groups, spelling)
		}
		args = append(args, "-groups "+strings.Join(groups, ":"))
	}

	args = append(args, "-msg -tls1_3 -num_tickets 0 -no_resume_ephemeral -no_cache")
	if !s.compatMode {
		args = append(args, "-no_middlebox")
	}

	return strings.Join(args, " "), nil
}

func (s *OpenSSLServer) PostChecks() ([]string, error) {
	return []string{`-c "HTTP/1.0 200 ok"`}, nil
}
