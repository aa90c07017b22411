package main

import "github.com/ksztenderski/PetriNet/cmd/multiplier/cmd"

func main() {
	cmd.Execute()
}
