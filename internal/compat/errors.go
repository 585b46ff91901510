package compat

import "fmt"

// UnknownIdentifierError indicates a requested ciphersuite, signature
// algorithm, named group or certificate profile is not part of the closed
// capability tables. Generation of the affected case is aborted; there is no
// partial output for a malformed case.
type UnknownIdentifierError struct {
	// Kind names the table that was consulted (e.g. "ciphersuite").
	Kind string
	// Name is the identifier that failed the lookup.
	Name string
}

// Error returns a human-readable description of the failed lookup.
func (e *UnknownIdentifierError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Kind, e.Name)
}

// Is allows errors.Is() to work with wrapped errors.
func (e *UnknownIdentifierError) Is(target error) bool {
	_, ok := target.(*UnknownIdentifierError)
	return ok
}

// InvalidCombinationError indicates an HRR composition was requested with
// identical client and server named groups. Such tuples must be filtered by
// the matrix driver before composition; reaching the composer with one is a
// caller contract violation.
type InvalidCombinationError struct {
	// ClientGroup is the client's initial named group.
	ClientGroup string
	// ServerGroup is the server's expected final named group.
	ServerGroup string
}

// Error returns a human-readable description of the degenerate combination.
func (e *InvalidCombinationError) Error() string {
	return fmt.Sprintf("degenerate HRR combination: client and server named group are both %q", e.ClientGroup)
}

// Is allows errors.Is() to work with wrapped errors.
func (e *InvalidCombinationError) Is(target error) bool {
	_, ok := target.(*InvalidCombinationError)
	return ok
}
