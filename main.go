// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/pyprov/pyprov/cmd/pyprov"

func main() {
	cmd.Execute()
}
