package main

import (
	"github.com/keoughkath/ExcisionFinder/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
