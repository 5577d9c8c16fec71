package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"qqfit/internal/config"
	"qqfit/internal/container"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load("")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := appConfig.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	log.Printf("Configuration: %s", appConfig)

	appContainer, err := container.New(appConfig)
	if err != nil {
		log.Fatalf("Failed to create application container: %v", err)
	}
	defer appContainer.Shutdown(context.Background())

	req, err := appContainer.NewRunRequest()
	if err != nil {
		log.Fatalf("Failed to build run request: %v", err)
	}

	result, err := appContainer.Pipeline.Run(context.Background(), req)
	if err != nil {
		log.Fatalf("Analysis run failed: %v", err)
	}

	fit := result.Report.Results[0]
	fmt.Printf("Run %s complete: %s fit (%s)\n", result.RunID, fit.Family, fit.Source)
	fmt.Printf("Charts: %s, %s\n", fit.QQChartPath, fit.DistChartPath)
	for _, path := range result.ReportPaths {
		fmt.Printf("Report written: %s\n", path)
	}
}
