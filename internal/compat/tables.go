package compat

import (
	"path"
	"slices"
	"strings"
)

// CertificateProfile holds the harness-relative certificate material used
// when a server authenticates with a given signature algorithm.
type CertificateProfile struct {
	CAFile   string
	CertFile string
	KeyFile  string
}

// The closed sets below are the shared semantic vocabulary of the generator.
// Declaration order is load-bearing: the matrix driver enumerates these
// slices in order, and repeated runs must produce byte-identical output.

var cipherSuites = []string{
	"TLS_AES_128_GCM_SHA256",
	"TLS_AES_256_GCM_SHA384",
	"TLS_CHACHA20_POLY1305_SHA256",
	"TLS_AES_128_CCM_SHA256",
	"TLS_AES_128_CCM_8_SHA256",
}

var cipherSuiteIANA = map[string]uint16{
	"TLS_AES_128_GCM_SHA256":       0x1301,
	"TLS_AES_256_GCM_SHA384":       0x1302,
	"TLS_CHACHA20_POLY1305_SHA256": 0x1303,
	"TLS_AES_128_CCM_SHA256":       0x1304,
	"TLS_AES_128_CCM_8_SHA256":     0x1305,
}

var signatureAlgorithms = []string{
	"ecdsa_secp256r1_sha256",
	"ecdsa_secp384r1_sha384",
	"ecdsa_secp521r1_sha512",
	"rsa_pss_rsae_sha256",
}

var signatureAlgorithmIANA = map[string]uint16{
	"ecdsa_secp256r1_sha256": 0x0403,
	"ecdsa_secp384r1_sha384": 0x0503,
	"ecdsa_secp521r1_sha512": 0x0603,
	"rsa_pss_rsae_sha256":    0x0804,
}

var namedGroups = []string{
	"secp256r1",
	"secp384r1",
	"secp521r1",
	"x25519",
	"x448",
}

var namedGroupIANA = map[string]uint16{
	"secp256r1": 0x17,
	"secp384r1": 0x18,
	"secp521r1": 0x19,
	"x25519":    0x1d,
	"x448":      0x1e,
}

// HRR cases exercise group renegotiation, not cipher or signature pinning,
// so only a single representative of each dimension is enumerated.

var hrrCipherSuites = []string{
	"TLS_AES_256_GCM_SHA384",
}

var hrrSignatureAlgorithms = []string{
	"ecdsa_secp384r1_sha384",
}

// certificateSignatureAlgorithms lists, in declaration order, every
// signature algorithm that has a certificate profile. A role program with no
// explicit certificate selection defaults to this full set.
var certificateSignatureAlgorithms = []string{
	"ecdsa_secp256r1_sha256",
	"ecdsa_secp384r1_sha384",
	"ecdsa_secp521r1_sha512",
	"rsa_pss_rsae_sha256",
}

var certificates = map[string]CertificateProfile{
	"ecdsa_secp256r1_sha256": {
		CAFile:   "data_files/test-ca2.crt",
		CertFile: "data_files/ecdsa_secp256r1.crt",
		KeyFile:  "data_files/ecdsa_secp256r1.key",
	},
	"ecdsa_secp384r1_sha384": {
		CAFile:   "data_files/test-ca2.crt",
		CertFile: "data_files/ecdsa_secp384r1.crt",
		KeyFile:  "data_files/ecdsa_secp384r1.key",
	},
	"ecdsa_secp521r1_sha512": {
		CAFile:   "data_files/test-ca2.crt",
		CertFile: "data_files/ecdsa_secp521r1.crt",
		KeyFile:  "data_files/ecdsa_secp521r1.key",
	},
	"rsa_pss_rsae_sha256": {
		CAFile:   "data_files/test-ca_cat12.crt",
		CertFile: "data_files/server2-sha256.crt",
		KeyFile:  "data_files/server2.key",
	},
}

// CipherSuiteIANA returns the IANA code of a canonical ciphersuite name.
func CipherSuiteIANA(name string) (uint16, error) {
	code, ok := cipherSuiteIANA[name]
	if !ok {
		return 0, &UnknownIdentifierError{Kind: "ciphersuite", Name: name}
	}
	return code, nil
}

// SignatureAlgorithmIANA returns the IANA code of a canonical signature
// algorithm name.
func SignatureAlgorithmIANA(name string) (uint16, error) {
	code, ok := signatureAlgorithmIANA[name]
	if !ok {
		return 0, &UnknownIdentifierError{Kind: "signature algorithm", Name: name}
	}
	return code, nil
}

// NamedGroupIANA returns the IANA code of a canonical named group.
func NamedGroupIANA(name string) (uint16, error) {
	code, ok := namedGroupIANA[name]
	if !ok {
		return 0, &UnknownIdentifierError{Kind: "named group", Name: name}
	}
	return code, nil
}

// CertificateProfileFor returns the certificate profile backing a
// certificate signature algorithm.
func CertificateProfileFor(sigAlg string) (CertificateProfile, error) {
	profile, ok := certificates[sigAlg]
	if !ok {
		return CertificateProfile{}, &UnknownIdentifierError{Kind: "certificate profile", Name: sigAlg}
	}
	return profile, nil
}

// CipherSuites returns the canonical ciphersuite names in declaration order.
func CipherSuites() []string {
	return slices.Clone(cipherSuites)
}

// SignatureAlgorithms returns the canonical signature algorithm names in
// declaration order.
func SignatureAlgorithms() []string {
	return slices.Clone(signatureAlgorithms)
}

// NamedGroups returns the canonical named group names in declaration order.
func NamedGroups() []string {
	return slices.Clone(namedGroups)
}

// HRRCipherSuites returns the ciphersuites enumerated for HRR cases.
func HRRCipherSuites() []string {
	return slices.Clone(hrrCipherSuites)
}

// HRRSignatureAlgorithms returns the signature algorithms enumerated for HRR
// cases.
func HRRSignatureAlgorithms() []string {
	return slices.Clone(hrrSignatureAlgorithms)
}

// CertificateSignatureAlgorithms returns every signature algorithm with a
// certificate profile, in declaration order.
func CertificateSignatureAlgorithms() []string {
	return slices.Clone(certificateSignatureAlgorithms)
}

const defaultDataDir = "data_files"

// SetDataDir re-points every certificate profile at dir, keeping the file
// names. It may only be called before the first composition; the tables are
// frozen once generation starts.
func SetDataDir(dir string) {
	for alg, profile := range certificates {
		profile.CAFile = relocate(profile.CAFile, dir)
		profile.CertFile = relocate(profile.CertFile, dir)
		profile.KeyFile = relocate(profile.KeyFile, dir)
		certificates[alg] = profile
	}
}

func relocate(file, dir string) string {
	return path.Join(dir, strings.TrimPrefix(file, defaultDataDir+"/"))
}

// OverrideCertificateProfile replaces the certificate profile of sigAlg.
// Empty fields of the override keep their current value. The signature
// algorithm must already be in the closed set; the tables are not extensible
// at runtime.
func OverrideCertificateProfile(sigAlg string, override CertificateProfile) error {
	current, ok := certificates[sigAlg]
	if !ok {
		return &UnknownIdentifierError{Kind: "certificate profile", Name: sigAlg}
	}
	if override.CAFile != "" {
		current.CAFile = override.CAFile
	}
	if override.CertFile != "" {
		current.CertFile = override.CertFile
	}
	if override.KeyFile != "" {
		current.KeyFile = override.KeyFile
	}
	certificates[sigAlg] = current
	return nil
}
