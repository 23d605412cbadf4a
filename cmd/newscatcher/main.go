package main

import "github.com/vietddude/newscatcher/internal/cli"

func main() {
	cli.Execute()
}
