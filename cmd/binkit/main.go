package main

import "github.com/LeJamon/goBinkit/internal/cli"

func main() {
	cli.Execute()
}
