package main

import "github.com/soundprobe/soundprobe/cmd"

func main() {
	cmd.Execute()
}
