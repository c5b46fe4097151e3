package main

import (
	"os"

	"mentorly/cli"
)

func main() {
	os.Exit(cli.Execute())
}
