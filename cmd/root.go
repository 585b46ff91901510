package cmd

import (
	"errors"
	"os"

	"tlscompat/internal/compat"
	"tlscompat/pkg/logging"

	"github.com/spf13/cobra"
)

// Exit codes for CLI commands. These follow common conventions.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, sink not writable).
	ExitCodeError = 1
	// ExitCodeUnknownIdentifier indicates a requested ciphersuite,
	// signature algorithm, named group or implementation is outside the
	// closed capability tables.
	ExitCodeUnknownIdentifier = 2
)

var rootDebug bool

// rootCmd represents the base command for the tlscompat application.
var rootCmd = &cobra.Command{
	Use:   "tlscompat",
	Short: "Generate TLS 1.3 interoperability test scripts",
	Long: `tlscompat generates TLS 1.3 compat test cases in ssl-opt.sh format,
exercising an mbedTLS client against OpenSSL and GnuTLS reference servers
across ciphersuites, signature algorithms and named groups, including the
HelloRetryRequest negotiation path.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors
	// that are handled by the application.
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := logging.LevelInfo
		if rootDebug {
			level = logging.LevelDebug
		}
		logging.Init(level, cmd.ErrOrStderr())
	},
}

// SetVersion sets the version for the root command. Called from the main
// package to inject the build version.
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "tlscompat version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode determines the appropriate exit code based on the error type.
func getExitCode(err error) int {
	var unknown *compat.UnknownIdentifierError
	if errors.As(err, &unknown) {
		return ExitCodeUnknownIdentifier
	}
	return ExitCodeError
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&rootDebug, "debug", false, "Enable debug logging")
	rootCmd.AddCommand(newVersionCmd())
}
