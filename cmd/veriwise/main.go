package main

import (
	"github.com/AryaMundra/VeriWise/internal/commands"
)

func main() {
	commands.Execute()
}
