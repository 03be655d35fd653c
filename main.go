package main

import "github.com/josephlewis42/crush/cmd"

func main() {
	cmd.Execute()
}
