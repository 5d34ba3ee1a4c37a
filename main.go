package main

import "moodgen/internal/app"

func main() {
	app.Main()
}
