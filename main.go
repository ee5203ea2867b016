package main

import "github.com/honganh1206/datetime/cmd"

func main() {
	cmd.Execute()
}
