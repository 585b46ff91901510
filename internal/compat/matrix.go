package compat

import "iter"

// caseParams is one fully-specified point of the test matrix.
type caseParams struct {
	hrr            bool
	server, client string
	cipher, sigAlg string

	namedGroup string // normal cases

	clientGroup, serverGroup string // HRR cases
}

func (p caseParams) compose() (*TestCase, error) {
	if p.hrr {
		return ComposeHRR(p.server, p.client, p.cipher, p.sigAlg, p.clientGroup, p.serverGroup)
	}
	return ComposeNormal(p.server, p.client, p.cipher, p.sigAlg, p.namedGroup)
}

// enumerate lists the full matrix in its canonical order: the normal cross
// product first, then the HRR product with equal-group tuples filtered out.
// The order follows the declaration order of the closed sets, innermost
// dimension varying fastest, so repeated runs are byte-identical.
func enumerate() []caseParams {
	var out []caseParams

	for _, cipher := range cipherSuites {
		for _, sigAlg := range signatureAlgorithms {
			for _, group := range namedGroups {
				for _, server := range serverNames {
					for _, client := range clientNames {
						out = append(out, caseParams{
							server: server,
							client: client,
							cipher: cipher,
							sigAlg: sigAlg,

							namedGroup: group,
						})
					}
				}
			}
		}
	}

	for _, cipher := range hrrCipherSuites {
		for _, sigAlg := range hrrSignatureAlgorithms {
			for _, clientGroup := range namedGroups {
				for _, serverGroup := range namedGroups {
					if clientGroup == serverGroup {
						continue
					}
					for _, server := range serverNames {
						for _, client := range clientNames {
							out = append(out, caseParams{
								hrr:    true,
								server: server,
								client: client,
								cipher: cipher,
								sigAlg: sigAlg,

								clientGroup: clientGroup,
								serverGroup: serverGroup,
							})
						}
					}
				}
			}
		}
	}

	return out
}

// Cases enumerates the full test matrix as a restartable sequence. Each
// iteration re-derives the matrix from the capability tables; no iteration
// state is shared between calls.
func Cases() iter.Seq2[*TestCase, error] {
	return func(yield func(*TestCase, error) bool) {
		for _, params := range enumerate() {
			if !yield(params.compose()) {
				return
			}
		}
	}
}
