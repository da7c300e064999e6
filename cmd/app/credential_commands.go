package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/journal/cmd/app/commands"
	"github.com/allisson/journal/internal/app"
	"github.com/allisson/journal/internal/config"
)

func getCredentialCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "verify-credentials",
			Usage: "Check an email and password against the stored key check without unlocking",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "email",
					Aliases:  []string{"e"},
					Required: true,
					Usage:    "Email used to derive the master key",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				keyChecks, err := container.KeyCheckRepository()
				if err != nil {
					return err
				}
				envelope, err := container.Envelope()
				if err != nil {
					return err
				}

				stdio := commands.DefaultIO()
				password, err := commands.PromptPassword(stdio.Writer, "Password: ")
				if err != nil {
					return err
				}

				return commands.RunVerifyCredentials(
					ctx,
					container.KeyDeriver(),
					envelope,
					keyChecks,
					container.Logger(),
					stdio.Writer,
					cmd.String("email"),
					password,
					cmd.String("format"),
				)
			},
		},
	}
}
