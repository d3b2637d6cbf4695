package main

import (
	"athena-dialect/cmd"
)

func main() {
	cmd.Execute()
}
