package main

import "github.com/siimplelab/minimal-timer/cmd"

func main() {
	cmd.Execute()
}
