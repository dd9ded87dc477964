package main

import "twii-miner/cmd"

func main() {
	cmd.Execute()
}
