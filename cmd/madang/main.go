package main

import "github.com/madang-lab/madang/cmd/madang/commands"

func main() {
	commands.Execute()
}
