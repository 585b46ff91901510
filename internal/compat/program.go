package compat

import (
	"slices"
	"sort"
)

// Params selects the initial negotiation parameters for one endpoint of a
// test case. Zero values leave the corresponding dimension unconstrained.
type Params struct {
	CipherSuite            string
	SignatureAlgorithm     string
	NamedGroup             string
	CertSignatureAlgorithm string
	// PeerNamedGroup is the group the other endpoint will settle on. Only
	// consulted for HRR cases.
	PeerNamedGroup string
	// HRR marks the endpoint as part of a HelloRetryRequest case: cipher
	// and signature selections are widened to the full negotiable range
	// while named groups stay pinned.
	HRR bool
	// DisableCompatMode turns off TLS 1.3 middlebox compatibility mode.
	DisableCompatMode bool
}

// Program is one endpoint of a test case: a reference implementation in a
// fixed role, configured with a subset of the capability tables. A Program
// is single-use: built from Params, optionally extended with the Add
// methods, then read out exactly once. Additions after the first read are a
// caller contract violation.
type Program interface {
	AddCipherSuites(names ...string)
	AddSignatureAlgorithms(names ...string)
	AddNamedGroups(names ...string)
	AddCertSignatureAlgorithms(names ...string)

	// Preconditions lists harness directives that must hold for the
	// generated case to be runnable at all.
	Preconditions() []string
	// Command builds the full single-line invocation of the endpoint.
	Command() (string, error)
	// PostChecks lists the output assertions that decide pass/fail.
	PostChecks() ([]string, error)
}

// ClientProgram is a Program that can additionally assert on a
// HelloRetryRequest transcript.
type ClientProgram interface {
	Program
	// PostHRRChecks replaces PostChecks for HRR cases. The rejected named
	// group is asserted before the accepted one.
	PostHRRChecks() ([]string, error)
}

// selection is the append-only parameter record shared by all program
// variants. Each list preserves the order of first addition and suppresses
// duplicates.
type selection struct {
	ciphers        []string
	sigAlgs        []string
	namedGroups    []string
	certSigAlgs    []string
	peerNamedGroup string
	hrr            bool
	compatMode     bool
}

func newSelection(p Params) selection {
	s := selection{
		peerNamedGroup: p.PeerNamedGroup,
		hrr:            p.HRR,
		compatMode:     !p.DisableCompatMode,
	}
	if p.CipherSuite != "" {
		s.AddCipherSuites(p.CipherSuite)
	}
	if p.NamedGroup != "" {
		s.AddNamedGroups(p.NamedGroup)
	}
	if p.SignatureAlgorithm != "" {
		s.AddSignatureAlgorithms(p.SignatureAlgorithm)
	}
	if p.CertSignatureAlgorithm != "" {
		s.AddCertSignatureAlgorithms(p.CertSignatureAlgorithm)
	}
	return s
}

func (s *selection) AddCipherSuites(names ...string) {
	s.ciphers = appendUnique(s.ciphers, names...)
}

func (s *selection) AddSignatureAlgorithms(names ...string) {
	s.sigAlgs = appendUnique(s.sigAlgs, names...)
}

func (s *selection) AddNamedGroups(names ...string) {
	s.namedGroups = appendUnique(s.namedGroups, names...)
}

func (s *selection) AddCertSignatureAlgorithms(names ...string) {
	s.certSigAlgs = appendUnique(s.certSigAlgs, names...)
}

// effectiveCertSigAlgs resolves the certificate signature algorithms used at
// generation time: the explicit selection, or the full profile set when none
// was requested so that the server presents every certificate type.
func (s *selection) effectiveCertSigAlgs() []string {
	if len(s.certSigAlgs) == 0 {
		return CertificateSignatureAlgorithms()
	}
	return slices.Clone(s.certSigAlgs)
}

// mergedSignatureAlgorithms combines the negotiated and certificate
// signature selections into one sorted, deduplicated fragment, for variants
// whose grammar takes a single global algorithm list.
func (s *selection) mergedSignatureAlgorithms(certSigAlgs []string) []string {
	merged := appendUnique(slices.Clone(s.sigAlgs), certSigAlgs...)
	sort.Strings(merged)
	return merged
}

func appendUnique(dst []string, names ...string) []string {
	for _, name := range names {
		if !slices.Contains(dst, name) {
			dst = append(dst, name)
		}
	}
	return dst
}

// The implementation set is closed: one constructor per (role, program)
// pairing, keyed by display name in declaration order.

var serverNames = []string{"OpenSSL", "GnuTLS"}
var clientNames = []string{"mbedTLS"}

// Servers returns the known server implementation names.
func Servers() []string {
	return slices.Clone(serverNames)
}

// Clients returns the known client implementation names.
func Clients() []string {
	return slices.Clone(clientNames)
}

// NewServer constructs the server program variant for the named
// implementation.
func NewServer(impl string, p Params) (Program, error) {
	switch impl {
	case "OpenSSL":
		return newOpenSSLServer(p), nil
	case "GnuTLS":
		return newGnuTLSServer(p), nil
	default:
		return nil, &UnknownIdentifierError{Kind: "server implementation", Name: impl}
	}
}

// NewClient constructs the client program variant for the named
// implementation.
func NewClient(impl string, p Params) (ClientProgram, error) {
	switch impl {
	case "mbedTLS":
		return newMbedTLSClient(p), nil
	default:
		return nil, &UnknownIdentifierError{Kind: "client implementation", Name: impl}
	}
}
