// Package main is the production entry point for the Spectra visualizer.
//
// Spectra draws an audio spectrum as bars with particles rising from them:
// - Event-driven communication (no callbacks)
// - Dependency injection for testability
// - MVP pattern for UI decoupling
// - Repository pattern for settings persistence
//
// Build:
//
//	go build -o build/spectra ./cmd
//
// Run:
//
//	./build/spectra -settings ~/.config/spectra.toml
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/tejashwikalptaru/spectra/internal/app"
	"github.com/tejashwikalptaru/spectra/internal/logger"
)

func main() {
	// Create default configuration
	config := app.DefaultConfig()

	flag.StringVar(&config.SettingsPath, "settings", config.SettingsPath, "TOML settings file (default: application preferences)")
	flag.IntVar(&config.BarCount, "bars", config.BarCount, "number of spectrum bars")
	flag.StringVar(&config.Glyphs, "glyphs", config.Glyphs, "draw text particles using these characters")
	logLevel := flag.String("log-level", "", "log level: debug, info, warn or error")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println(app.GetVersionInfo().FullString())
		return
	}
	if *logLevel != "" {
		config.LogLevel = logger.ParseLevel(*logLevel, config.LogLevel)
	}

	// Create the application with dependency injection
	application, err := app.NewApplication(config)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Ensure a graceful shutdown
	defer func() {
		if err := application.Shutdown(); err != nil {
			fmt.Fprintf(os.Stderr, "Shutdown error: %v\n", err)
		}
	}()

	// Run application (blocks until the window closed)
	if err := application.Run(); err != nil {
		log.Printf("Application error: %v", err)
	}
}
