package main

import "hdrtidy/cmd/hdrtidy/cmd"

func main() {
	cmd.Execute()
}
