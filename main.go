// Package main is the entry point of the lintel command.
package main

import "github.com/mouse-blink/lintel/cmd"

func main() {
	cmd.Execute()
}
