package main

import (
	_ "github.com/joho/godotenv/autoload"

	"syncednotes/cmd/syncednotes/cmd"
)

func main() {
	cmd.Execute()
}
