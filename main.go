package main

import (
	"os"

	"github.com/insightdelivered/card-statement-parser/internal/cli"
)

func main() {
	os.Exit(cli.Main())
}
