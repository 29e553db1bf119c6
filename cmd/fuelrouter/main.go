package main

import "github.com/andrescamacho/fuelrouter-go/internal/adapters/cli"

func main() {
	cli.Execute()
}
