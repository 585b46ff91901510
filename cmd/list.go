package cmd

import (
	"fmt"
	"strings"

	"tlscompat/internal/compat"
	"tlscompat/internal/formatting"

	"github.com/spf13/cobra"
)

var listOutputFormat string

// listCmd represents the list command: read-only reflection over the
// capability tables, for discovery and tooling.
var listCmd = &cobra.Command{
	Use:   "list <ciphers|sig-algs|named-groups|servers|clients>",
	Short: "List the closed capability sets",
	Long: `List the identifiers the generator knows about.

Available sets:
  ciphers        - TLS 1.3 ciphersuites
  sig-algs       - signature algorithms
  named-groups   - key-exchange named groups
  servers        - reference server implementations
  clients        - reference client implementations

The default plain output is a single space-separated line. With
--output table, IANA codes and per-implementation spellings are included.`,
	Args:                  cobra.ExactArgs(1),
	ValidArgs:             []string{"ciphers", "sig-algs", "named-groups", "servers", "clients"},
	DisableFlagsInUseLine: true,
	RunE:                  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listOutputFormat, "output", "o", "plain", "Output format (plain, table)")
}

func runList(cmd *cobra.Command, args []string) error {
	set := args[0]

	names, err := capabilitySet(set)
	if err != nil {
		return err
	}

	switch listOutputFormat {
	case "plain":
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(names, " "))
		return nil
	case "table":
		header, rows, err := capabilityRows(set, names)
		if err != nil {
			return err
		}
		formatting.RenderTable(cmd.OutOrStdout(), header, rows)
		return nil
	default:
		return fmt.Errorf("unknown output format '%s'. Available formats: plain, table", listOutputFormat)
	}
}

func capabilitySet(set string) ([]string, error) {
	switch set {
	case "ciphers":
		return compat.CipherSuites(), nil
	case "sig-algs":
		return compat.SignatureAlgorithms(), nil
	case "named-groups":
		return compat.NamedGroups(), nil
	case "servers":
		return compat.Servers(), nil
	case "clients":
		return compat.Clients(), nil
	default:
		return nil, fmt.Errorf("unknown capability set '%s'. Available sets: ciphers, sig-algs, named-groups, servers, clients", set)
	}
}

// capabilityRows builds the table view of one capability set: the canonical
// name, its IANA code and each implementation's own spelling of it.
func capabilityRows(set string, names []string) ([]string, [][]string, error) {
	var header []string
	var rows [][]string

	switch set {
	case "ciphers":
		header = []string{"NAME", "IANA", "GNUTLS", "MBEDTLS"}
		for _, name := range names {
			code, err := compat.CipherSuiteIANA(name)
			if err != nil {
				return nil, nil, err
			}
			gnutls, err := compat.GnuTLSCipherSuiteTokens(name)
			if err != nil {
				return nil, nil, err
			}
			mbedtls, err := compat.MbedTLSCipherSuiteName(name)
			if err != nil {
				return nil, nil, err
			}
			rows = append(rows, []string{name, fmt.Sprintf("0x%04x", code), strings.Join(gnutls, ":"), mbedtls})
		}
	case "sig-algs":
		header = []string{"NAME", "IANA", "GNUTLS"}
		for _, name := range names {
			code, err := compat.SignatureAlgorithmIANA(name)
			if err != nil {
				return nil, nil, err
			}
			gnutls, err := compat.GnuTLSSignatureAlgorithmTokens(name)
			if err != nil {
				return nil, nil, err
			}
			rows = append(rows, []string{name, fmt.Sprintf("0x%04x", code), strings.Join(gnutls, ":")})
		}
	case "named-groups":
		header = []string{"NAME", "IANA", "OPENSSL", "GNUTLS"}
		for _, name := range names {
			code, err := compat.NamedGroupIANA(name)
			if err != nil {
				return nil, nil, err
			}
			openssl, err := compat.OpenSSLNamedGroup(name)
			if err != nil {
				return nil, nil, err
			}
			gnutls, err := compat.GnuTLSNamedGroupTokens(name)
			if err != nil {
				return nil, nil, err
			}
			rows = append(rows, []string{name, fmt.Sprintf("0x%04x", code), openssl, strings.Join(gnutls, ":")})
		}
	case "servers", "clients":
		header = []string{"NAME"}
		for _, name := range names {
			rows = append(rows, []string{name})
		}
	}

	return header, rows, nil
}
