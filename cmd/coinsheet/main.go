package main

import "github.com/rickgao/coinsheet/internal/cli"

func main() {
	cli.Execute()
}
