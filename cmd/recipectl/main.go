package main

import (
	"os"

	"github.com/recipebox/recipe-api/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
