package main

import (
	"log"

	"github.com/David070920/estimareimob/internal/app"
)

func main() {
	application, err := app.NewPipelineApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("Application run failed: %v", err)
	}
}
