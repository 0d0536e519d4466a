package main

import "github.com/hoppxi/lumen/internal/cmd"

func main() {
	cmd.Execute()
}
