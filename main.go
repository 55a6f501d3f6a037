package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		log.Fatalf("application error: %v", err)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "sonority",
		Usage: "Music catalog service: accounts, artists, follows, albums and likes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Path to a .env file loaded before reading the environment",
				Value: ".env",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Migrate the database and serve the HTTP API",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "Create or update the database schema and exit",
				Action: migrate,
			},
			{
				Name:  "events",
				Usage: "Tail domain events from RabbitMQ",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "queue",
						Usage: "Queue to bind to the event exchange",
						Value: "sonority.events.tail",
					},
					&cli.StringFlag{
						Name:  "binding",
						Usage: "Routing key pattern, e.g. album.* or #",
						Value: "#",
					},
				},
				Action: tailEvents,
			},
		},
	}
}
