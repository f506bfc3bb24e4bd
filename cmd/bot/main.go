package main

import "eventpass/cmd/bot/cmd"

func main() {
	cmd.Execute()
}
