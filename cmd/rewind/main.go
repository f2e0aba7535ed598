package main

import "github.com/keshon/rewind/internal/commands"

func main() {
	commands.Execute()
}
