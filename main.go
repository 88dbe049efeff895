package main

import (
	"github.com/charmbracelet/flick/internal/cmd"
)

func main() {
	cmd.Execute()
}
