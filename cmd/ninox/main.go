package main

import (
	"os"

	"github.com/ninoxdb/ninox-go/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
