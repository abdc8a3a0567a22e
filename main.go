package main

import "github.com/tm-cli/tm/cmd"

func main() {
	cmd.Execute()
}
