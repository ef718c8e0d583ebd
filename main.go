package main

import "github.com/anikom15/scanline-classic/cmd"

func main() {
	cmd.Execute()
}
