package main

import (
	"fmt"

	"go-hrmos-automation/internal/config"
)

func main() {
	fmt.Println("🔧 Testing config loading...")
	cfg := config.Load()
	fmt.Printf("✅ Config loaded successfully!\n")
	fmt.Printf("   Base URL: %s\n", cfg.BaseURL)
	fmt.Printf("   Headless: %t\n", cfg.Headless)
	fmt.Printf("   Credentials set: %t\n", cfg.Credentials().Validate() == nil)
	fmt.Printf("   Output Dir: %s\n", cfg.OutputDir)
	fmt.Printf("   Cookies Path: %s\n", cfg.CookiesPath)
	fmt.Printf("   Cache Path: %s\n", cfg.CachePath)
	fmt.Printf("   Schedule Cron: %q\n", cfg.ScheduleCron)
}
