package main

import (
	"os"

	"github.com/wmeints/lazydiff/internal/cli"
)

func main() {
	code, _ := cli.Run(os.Args, nil)
	os.Exit(code)
}
