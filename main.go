package main

import "github.com/graang/graang/cmd"

func main() {
	cmd.Execute()
}
