package main

import "github.com/nyaya-legal/nyaya/cmd"

func main() {
	cmd.Execute()
}
