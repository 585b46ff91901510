package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"tlscompat/internal/compat"
	"tlscompat/internal/config"
	"tlscompat/pkg/logging"

	"github.com/spf13/cobra"
)

var (
	generateOutput     string
	generateAll        bool
	generateConfigPath string
	generateSerial     bool
)

// generateCmd represents the generate command.
//
// The upstream generator gated single-case generation behind the same flag
// that triggers full-matrix generation, leaving the single-case path
// unreachable. Here the single selected case is generated whenever --all is
// not given, which is the evident intent.
var generateCmd = &cobra.Command{
	Use:   "generate [server [client [cipher [sig_alg [named_group]]]]]",
	Short: "Generate TLS 1.3 compat test cases",
	Long: `Generate TLS 1.3 compat test cases in ssl-opt.sh format.

Without --all, one test case is generated for the selected parameter tuple;
omitted positional arguments default to the first entry of the corresponding
capability table. With --all, the full cross product of ciphersuites,
signature algorithms, named groups and implementations is generated,
followed by the HelloRetryRequest cases.

Examples:
  tlscompat generate
  tlscompat generate GnuTLS mbedTLS TLS_AES_256_GCM_SHA384
  tlscompat generate -a -o tls13-compat.sh`,
	Args: cobra.MaximumNArgs(5),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Output file path (default: standard output)")
	generateCmd.Flags().BoolVarP(&generateAll, "all", "a", false, "Generate all available TLS 1.3 compat tests")
	generateCmd.Flags().StringVar(&generateConfigPath, "config", "", "Optional YAML config overriding certificate file locations")
	generateCmd.Flags().BoolVar(&generateSerial, "serial", false, "Render the full matrix on a single goroutine")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if generateConfigPath != "" {
		cfg, err := config.Load(generateConfigPath)
		if err != nil {
			return err
		}
		if err := cfg.Apply(); err != nil {
			return err
		}
	}

	if generateAll {
		return generateFullMatrix(cmd)
	}

	selection, err := resolveSelection(args)
	if err != nil {
		return err
	}
	return generateSingleCase(cmd, selection)
}

func generateFullMatrix(cmd *cobra.Command) error {
	if generateOutput == "" {
		return compat.WriteScript(cmd.OutOrStdout(), "", !generateSerial)
	}

	f, err := os.Create(generateOutput)
	if err != nil {
		return err
	}
	defer f.Close()

	header := compat.Header(filepath.Base(generateOutput))
	if err := compat.WriteScript(f, header, !generateSerial); err != nil {
		return err
	}
	logging.Info("Generate", "Wrote full test matrix to %s", generateOutput)
	return f.Close()
}

// caseSelection is one explicit parameter tuple from the command line.
type caseSelection struct {
	server, client string
	cipher, sigAlg string
	namedGroup     string
}

// resolveSelection fills the positional tuple, defaulting each omitted
// argument to the first entry of its capability table, and rejects values
// outside the closed sets before the core ever sees them.
func resolveSelection(args []string) (caseSelection, error) {
	dimensions := []struct {
		kind  string
		known []string
		value *string
	}{
		{"server implementation", compat.Servers(), nil},
		{"client implementation", compat.Clients(), nil},
		{"ciphersuite", compat.CipherSuites(), nil},
		{"signature algorithm", compat.SignatureAlgorithms(), nil},
		{"named group", compat.NamedGroups(), nil},
	}

	var s caseSelection
	dimensions[0].value = &s.server
	dimensions[1].value = &s.client
	dimensions[2].value = &s.cipher
	dimensions[3].value = &s.sigAlg
	dimensions[4].value = &s.namedGroup

	for i, dim := range dimensions {
		*dim.value = dim.known[0]
		if i < len(args) {
			*dim.value = args[i]
		}
		if !slices.Contains(dim.known, *dim.value) {
			return caseSelection{}, fmt.Errorf("invalid %s (choose from %v): %w",
				dim.kind, dim.known, &compat.UnknownIdentifierError{Kind: dim.kind, Name: *dim.value})
		}
	}
	return s, nil
}

func generateSingleCase(cmd *cobra.Command, s caseSelection) error {
	testCase, err := compat.ComposeNormal(s.server, s.client, s.cipher, s.sigAlg, s.namedGroup)
	if err != nil {
		return err
	}

	var out io.Writer = cmd.OutOrStdout()
	if generateOutput != "" {
		f, err := os.Create(generateOutput)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	_, err = io.WriteString(out, testCase.Script()+"\n")
	return err
}
