package main

import (
	"os"

	"github.com/HRPortal/HRPortal/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
