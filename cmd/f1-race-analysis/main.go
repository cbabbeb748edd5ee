package main

import "f1-race-analysis/internal/cli"

func main() {
	cli.Execute()
}
