package main

import "github.com/KaramelBytes/iris-explorer/cmd"

func main() {
	cmd.Execute()
}
