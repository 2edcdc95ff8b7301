package main

import "github.com/pfrederiksen/nhl-season/internal/cli"

var version = "dev"

func main() {
	cli.Version = version
	cli.Execute()
}
