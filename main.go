package main

import "github.com/alexiusacademia/goprofile/cmd"

func main() {
	cmd.Execute()
}
