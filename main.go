package main

import "github.com/bumpr-dev/bumpr/cmd"

func main() {
	cmd.Execute()
}
