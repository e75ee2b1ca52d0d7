package main

import "github.com/moffa90/go-i2ceeprom/internal/cli"

func main() {
	cli.Execute()
}
