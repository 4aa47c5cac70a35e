package main

import "github.com/chisel-ui/chisel/cmd"

func main() {
	cmd.Execute()
}
