package main

import "github.com/gameverse/gameverse-go/internal/cli"

func main() {
	cli.Execute()
}
