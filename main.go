package main

import "github.com/rpgo/dreamcalc/cmd"

func main() {
	cmd.Execute()
}
