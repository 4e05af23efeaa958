package main

import "nfl-game-dates/internal/cli"

func main() {
	cli.Execute()
}
