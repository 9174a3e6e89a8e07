package main

import "github.com/ahmeddyounes/mediatrace/cmd"

func main() {
	cmd.Execute()
}
