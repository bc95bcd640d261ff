package main

import "github.com/duvalivy/planrh/cmd"

func main() {
	cmd.Execute()
}
