package main

import "reparto_tracker/internal/cli"

func main() {
	cli.Execute()
}
