package main

import "ttconv/cmd"

func main() {
	cmd.Execute()
}
