// SPDX-License-Identifier: MPL-2.0

package main

import cmd "juvixdoc/cmd/juvixdoc"

func main() {
	cmd.Execute()
}
