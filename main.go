package main

import "github.com/jjenkins/mateng/cmd"

func main() {
	cmd.Execute()
}
