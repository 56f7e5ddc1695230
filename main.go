package main

import "github.com/cybrarymin/cinema/cmd"

func main() {
	cmd.Execute()
}
