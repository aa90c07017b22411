package main

import "github.com/ksztenderski/PetriNet/cmd/alternator/cmd"

func main() {
	cmd.Execute()
}
