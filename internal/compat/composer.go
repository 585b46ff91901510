package compat

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// TestCase is one self-contained interoperability test record, immutable
// once produced. It is serialized with Script and never read back in.
type TestCase struct {
	Name          string
	ServerCommand string
	ClientCommand string
	// ExitCode is the expected process exit status. Always 0: failure is
	// detected through the output assertions, not the exit status.
	ExitCode      int
	Preconditions []string
	Checks        []string
}

// runDirectiveSeparator continues a run_test directive onto the next line,
// indented under the opening quote (ssl-opt.sh convention).
const runDirectiveSeparator = " \\\n         "

// Script renders the test case in ssl-opt.sh format: precondition lines
// followed by a single backslash-continued run_test directive.
func (t *TestCase) Script() string {
	fields := []string{
		fmt.Sprintf("run_test %q", t.Name),
		`"` + t.ServerCommand + `"`,
		`"` + t.ClientCommand + `"`,
		strconv.Itoa(t.ExitCode),
	}
	fields = append(fields, t.Checks...)

	lines := append(slices.Clone(t.Preconditions), strings.Join(fields, runDirectiveSeparator))
	return strings.Join(lines, "\n")
}

// ComposeNormal produces the test case for a plain (non-HRR) negotiation:
// both endpoints are configured with the same ciphersuite, signature
// algorithm and named group, and the transcript must not contain a
// HelloRetryRequest.
func ComposeNormal(server, client, cipher, sigAlg, namedGroup string) (*TestCase, error) {
	name := fmt.Sprintf("TLS 1.3 %c->%c: %s,%s,%s",
		client[0], server[0], cipher, namedGroup, sigAlg)

	params := Params{
		CipherSuite:            cipher,
		SignatureAlgorithm:     sigAlg,
		NamedGroup:             namedGroup,
		CertSignatureAlgorithm: sigAlg,
	}

	srv, err := NewServer(server, params)
	if err != nil {
		return nil, err
	}
	cli, err := NewClient(client, params)
	if err != nil {
		return nil, err
	}

	return compose(name, srv, cli, func() ([]string, error) {
		serverChecks, err := srv.PostChecks()
		if err != nil {
			return nil, err
		}
		clientChecks, err := cli.PostChecks()
		if err != nil {
			return nil, err
		}
		checks := append(serverChecks, clientChecks...)
		// The absence assertion is what distinguishes a normal case from
		// an HRR case.
		return append(checks, `-C "received HelloRetryRequest message"`), nil
	})
}

// ComposeHRR produces the test case for a HelloRetryRequest negotiation: the
// client first offers clientGroup, the server rejects it and both settle on
// serverGroup. The two groups must differ; equal groups are a degenerate
// combination the matrix driver filters out before composition.
func ComposeHRR(server, client, cipher, sigAlg, clientGroup, serverGroup string) (*TestCase, error) {
	if clientGroup == serverGroup {
		return nil, &InvalidCombinationError{ClientGroup: clientGroup, ServerGroup: serverGroup}
	}

	name := fmt.Sprintf("TLS 1.3 %c->%c: HRR %s -> %s",
		client[0], server[0], clientGroup, serverGroup)

	srv, err := NewServer(server, Params{
		CipherSuite:        cipher,
		SignatureAlgorithm: sigAlg,
		NamedGroup:         serverGroup,
		PeerNamedGroup:     clientGroup,
		HRR:                true,
	})
	if err != nil {
		return nil, err
	}
	cli, err := NewClient(client, Params{
		CipherSuite:        cipher,
		SignatureAlgorithm: sigAlg,
		NamedGroup:         clientGroup,
		PeerNamedGroup:     serverGroup,
		HRR:                true,
	})
	if err != nil {
		return nil, err
	}

	return compose(name, srv, cli, func() ([]string, error) {
		serverChecks, err := srv.PostChecks()
		if err != nil {
			return nil, err
		}
		clientChecks, err := cli.PostHRRChecks()
		if err != nil {
			return nil, err
		}
		return append(serverChecks, clientChecks...), nil
	})
}

func compose(name string, srv Program, cli ClientProgram, checks func() ([]string, error)) (*TestCase, error) {
	serverCommand, err := srv.Command()
	if err != nil {
		return nil, err
	}
	clientCommand, err := cli.Command()
	if err != nil {
		return nil, err
	}
	allChecks, err := checks()
	if err != nil {
		return nil, err
	}

	preconditions := append(srv.Preconditions(), cli.Preconditions()...)

	return &TestCase{
		Name:          name,
		ServerCommand: serverCommand,
		ClientCommand: clientCommand,
		ExitCode:      0,
		Preconditions: preconditions,
		Checks:        allChecks,
	}, nil
}
