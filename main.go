package main

import "github.com/tranvictor/tokenlens/cmd"

func main() {
	cmd.Execute()
}
