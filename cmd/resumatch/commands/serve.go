package commands

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/urfave/cli/v3"

	"resumatch/internal/handlers"
)

// ServeAction starts the web form front and keeps it up until the command
// context is cancelled.
func ServeAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port := cmd.Int("port"); port > 0 {
		cfg.Server.Port = strconv.Itoa(port)
	}

	app := handlers.New(cfg)

	// Graceful shutdown
	go func() {
		<-ctx.Done()
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)
	log.Printf("📄 Upload form: http://localhost%s/\n", addr)
	log.Printf("🔗 Scoring service: %s\n", cfg.Match.BaseURL)

	if err := app.Listen(addr); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
