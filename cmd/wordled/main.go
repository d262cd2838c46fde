package main

import "github.com/acarlini/wordled/internal/cli"

func main() {
	cli.Execute()
}
