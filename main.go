package main

import (
	"flag"
	"fmt"
	"os"

	"tasklist-service/config"
	"tasklist-service/models"
	"tasklist-service/server"
	"tasklist-service/store"
)

func main() {
	commandFlag := flag.String("command", "start", "Command to run modules")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Configuration error:", err)
		os.Exit(1)
	}

	switch *commandFlag {
	case "start":
		server.StartServer(cfg)
	case "init-store":
		// Write an empty document so the data file exists before first use
		st := store.New(cfg.DataFile)
		if err := st.Update(func(doc *models.Document) error { return nil }); err != nil {
			fmt.Println("Failed to initialize store:", err)
			os.Exit(1)
		}
		fmt.Println("Store initialized at", cfg.DataFile)
	default:
		fmt.Println("Usage: go run main.go --command <start|init-store>")
		os.Exit(1)
	}
}
