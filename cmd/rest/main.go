package main

import (
	"context"
	"log"

	"line-faq-bot/internal/bootstrap"
	"line-faq-bot/internal/config"
	"line-faq-bot/internal/server"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg)
	defer container.TemplateStore.Close()

	// 3. Start Background Consumer
	// Replies are delivered out of band after the webhook has been acked.
	if err := container.ConsumerService.Consume(context.Background()); err != nil {
		log.Fatalf("Unable to start consumer: %v", err)
	}

	// 4. Initialize and Run Server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
