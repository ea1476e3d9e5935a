package main

import "mls-insights/cmd"

func main() {
	cmd.Execute()
}
