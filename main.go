package main

import "github.com/notargets/gojoint/cmd"

func main() {
	cmd.Execute()
}
