package main

import "github.com/arslanonur06/connectme/cli/internal/cmd"

func main() {
	cmd.Execute()
}
