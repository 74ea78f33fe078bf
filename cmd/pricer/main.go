package main

import "github.com/andrescamacho/prun-pricer/internal/adapters/cli"

func main() {
	cli.Execute()
}
