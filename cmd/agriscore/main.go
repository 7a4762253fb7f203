package main

import "github.com/bibbank/agriscore/internal/cli"

func main() {
	cli.Execute()
}
