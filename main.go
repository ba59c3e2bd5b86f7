package main

import "github.com/KaramelBytes/termtable/cmd"

func main() {
	cmd.Execute()
}
