package main

import "github.com/oshokin/timekeeper/cmd/timekeeper/cmd"

func main() {
	cmd.Execute()
}
