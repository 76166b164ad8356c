package main

import "github.com/notargets/gllinterp/cmd"

func main() {
	cmd.Execute()
}
