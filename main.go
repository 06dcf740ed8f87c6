package main

import "github.com/tanq16/scenefetch/cmd"

func main() {
	cmd.Execute()
}
