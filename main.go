package main

import (
	"os"

	"github.com/GoAuthZ-Admin/GoAuthZ-Admin/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
