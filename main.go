// SPDX-License-Identifier: MPL-2.0

// Package main provides the entry point for srcpack, a source
// distribution builder. All command-line handling lives in cmd/srcpack.
package main

import cmd "srcpack/cmd/srcpack"

func main() {
	cmd.Execute()
}
