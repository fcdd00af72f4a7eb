package main

import "github.com/maniac234/ascens-o-e-evolu-o-85f001d4/cmd/asc/root"

func main() {
	root.Execute()
}
