// Command blockpress runs the post authoring service. All configuration
// comes from environment variables, optionally loaded from a .env file.
package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/levkoz/blockpress"
)

func main() {
	// A missing .env is fine; real deployments set the environment
	// directly.
	_ = godotenv.Load()

	app := blockpress.New(blockpress.SiteConfig{
		Name:          blockpress.EnvOr("SITE_NAME", "Personal Blog"),
		Addr:          blockpress.EnvOr("ADDR", ":3000"),
		DatabasePath:  blockpress.EnvOr("DATABASE_PATH", "data/drafts.db"),
		AdminPassword: blockpress.MustEnv("ADMIN_PASSWORD"),
		SessionSecret: blockpress.MustEnv("SESSION_SECRET"),
		CookieSecure:  blockpress.EnvOr("COOKIE_SECURE", "") != "",
	})
	defer app.Close()

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
