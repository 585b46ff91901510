package compat

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
)

const outputHeader = `#!/bin/sh

# %[1]s
#
# Copyright The Mbed TLS Contributors
# SPDX-License-Identifier: Apache-2.0
#
# Licensed under the Apache License, Version 2.0 (the "License"); you may
# not use this file except in compliance with the License.
# You may obtain a copy of the License at
#
# http://www.apache.org/licenses/LICENSE-2.0
#
# Unless required by applicable law or agreed to in writing, software
# distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
# WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
# See the License for the specific language governing permissions and
# limitations under the License.
#
# Purpose
#
# List TLS1.3 compat test cases. They are generated by
# ` + "`tlscompat generate -a -o %[1]s`" + `.
#
# PLEASE DO NOT EDIT THIS FILE. IF NEEDED, PLEASE MODIFY ` + "`tlscompat`" + `
# AND REGENERATE THIS FILE.
#
`

// Header returns the provenance header emitted ahead of a full-matrix
// generation to a file.
func Header(filename string) string {
	return fmt.Sprintf(outputHeader, filename)
}

// WriteScript renders the full test matrix to w: the optional header, then
// the test-case blocks separated by blank lines, with a trailing newline.
// Rendering may fan out over multiple goroutines; the emitted order is the
// canonical matrix order either way.
func WriteScript(w io.Writer, header string, parallel bool) error {
	scripts, err := renderAll(parallel)
	if err != nil {
		return err
	}

	if header != "" {
		if _, err := io.WriteString(w, header); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, strings.Join(scripts, "\n\n")); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

// renderAll produces the script block of every matrix entry, in matrix
// order. The parallel path composes disjoint entries concurrently into an
// index-ordered slice, so the result is byte-identical to the serial path.
func renderAll(parallel bool) ([]string, error) {
	params := enumerate()
	scripts := make([]string, len(params))

	if !parallel {
		for i, p := range params {
			testCase, err := p.compose()
			if err != nil {
				return nil, err
			}
			scripts[i] = testCase.Script()
		}
		return scripts, nil
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, p := range params {
		g.Go(func() error {
			testCase, err := p.compose()
			if err != nil {
				return err
			}
			scripts[i] = testCase.Script()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scripts, nil
}
