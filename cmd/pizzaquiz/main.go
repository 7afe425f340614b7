package main

import "github.com/mind-engage/pizzaquiz/cmd"

func main() {
	cmd.Execute()
}
