package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"resumatch/cmd/resumatch/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.Command{
		Name:  "resumatch",
		Usage: "score a resume against a job description via the external matching service",
		Commands: []*cli.Command{
			{
				Name:  "match",
				Usage: "run one scoring round trip and print the result",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "resume",
						Usage:    "path to the resume PDF",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "job",
						Usage: "path to a file holding the job description",
					},
					&cli.StringFlag{
						Name:  "job-text",
						Usage: "job description given inline (stdin is read when neither --job nor --job-text is set)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "print the raw match result as JSON",
					},
					&cli.BoolFlag{
						Name:  "strict",
						Usage: "fully parse the PDF before submitting",
					},
				},
				Action: commands.MatchAction,
			},
			{
				Name:   "form",
				Usage:  "interactive submit loop, the terminal rendition of the upload form",
				Action: commands.FormAction,
			},
			{
				Name:  "serve",
				Usage: "start the web form front",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "port",
						Usage: "HTTP port (overrides PORT)",
					},
				},
				Action: commands.ServeAction,
			},
			{
				Name:   "schema",
				Usage:  "print the relational contract of the scoring backend",
				Action: commands.SchemaAction,
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
