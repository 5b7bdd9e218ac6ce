package main

import "github.com/davebream/mcpmock/cmd"

func main() {
	cmd.Execute()
}
