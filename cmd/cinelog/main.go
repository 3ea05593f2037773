package main

import (
	"github.com/cinelog/cinelog/internal/cli"
)

func main() {
	cli.Execute()
}
