package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "animectl: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "animectl",
		Usage: "Manage the anime list through the HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "server",
				Aliases: []string{"s"},
				Usage:   "Base URL of the API",
				Value:   "http://localhost:8080",
				Sources: cli.EnvVars("ANIME_API_URL"),
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Timeout per request",
				Value: defaultTimeout,
			},
		},
		Commands: commands(),
	}
}
