package main

import "github.com/segctl/segctl/cmd"

func main() {
	cmd.Execute()
}
