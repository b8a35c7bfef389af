package main

import "github.com/LegacyCodeHQ/requiregraph/cmd"

func main() {
	cmd.Execute()
}
