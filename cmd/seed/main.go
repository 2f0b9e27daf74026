package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/ikkim/printcraft-backend/config"
	"github.com/ikkim/printcraft-backend/internal/app/service"
	"github.com/ikkim/printcraft-backend/internal/db"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path> [-y]")
	}

	filePath := os.Args[1]
	assumeYes := len(os.Args) > 2 && os.Args[2] == "-y"

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	rows, err := readPrintAreasFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total print areas to import: %d\n", len(rows))

	if !assumeYes {
		fmt.Print("Do you want to proceed with the import? (yes/no): ")
		var confirm string
		fmt.Scanln(&confirm)
		if confirm != "yes" && confirm != "y" {
			fmt.Println("Import cancelled.")
			return
		}
	}

	components := service.NewComponents(service.Dependencies{
		DB:    db.GetDB(),
		Media: cfg.Media,
	})

	result := importPrintAreas(context.Background(), components.PrintAreas, rows)

	fmt.Println("Import completed!")
	fmt.Printf("  Imported: %d\n", result.Imported)
	fmt.Printf("  Failed:   %d\n", len(result.Failures))
	for _, f := range result.Failures {
		fmt.Printf("    row %d: %v\n", f.Row, f.Err)
	}
}
