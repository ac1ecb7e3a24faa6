package main

import "github.com/nfrund/ytu/cmd/ytu-cli/cmd"

func main() {
	cmd.Execute()
}
