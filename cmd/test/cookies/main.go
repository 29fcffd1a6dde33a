package main

import (
	"fmt"
	"log"

	"go-hrmos-automation/internal/browser"
	"go-hrmos-automation/internal/config"
)

func main() {
	fmt.Println("🍪 Testing cookie loading...")

	cfg := config.Load()
	cookies, err := browser.LoadCookies(cfg.CookiesPath)
	if err != nil {
		log.Fatalf("Failed to load cookies from %s: %v", cfg.CookiesPath, err)
	}

	fmt.Printf("✅ Loaded %d cookies\n", len(cookies))

	//Print first cookie as example
	if len(cookies) > 0 {
		c := cookies[0]
		fmt.Printf("\nExample cookie:\n")
		fmt.Printf("Name: %s\n", c.Name)
		fmt.Printf("Domain: %s\n", *c.Domain)
		fmt.Printf("Path: %s\n", *c.Path)
	}
}
