package main

import (
	"github.com/bornholm/taskhub/internal/command"
	"github.com/bornholm/taskhub/internal/command/serve"
)

func main() {
	command.Main("taskhub", "Task assignment backend for Telegram", serve.Command())
}
