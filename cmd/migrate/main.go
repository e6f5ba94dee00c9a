package main

import (
	"tossbash/internal/config" // Custom import path (Config)
	"tossbash/internal/db"     // Custom import path (Database)
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig()
	db.Migrate(cfg.DSN())
}
