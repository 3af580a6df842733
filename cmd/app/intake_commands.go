package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/lawoffice/intake/cmd/app/commands"
	"github.com/lawoffice/intake/internal/app"
	"github.com/lawoffice/intake/internal/config"
)

func formFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "name",
			Aliases: []string{"n"},
			Usage:   "Full name of the person asking for help",
		},
		&cli.StringFlag{
			Name:    "email",
			Aliases: []string{"e"},
			Usage:   "Email address",
		},
		&cli.StringFlag{
			Name:    "phone",
			Aliases: []string{"p"},
			Usage:   "US phone number (10 digits, optional leading 1)",
		},
		&cli.StringFlag{
			Name:    "practice-area",
			Aliases: []string{"a"},
			Usage:   "Practice area, as listed in the site content",
		},
		&cli.StringFlag{
			Name:    "message",
			Aliases: []string{"m"},
			Usage:   "Description of the legal matter",
		},
		&cli.StringSliceFlag{
			Name:  "file",
			Usage: "Path of a document to attach (repeatable)",
		},
		&cli.StringFlag{
			Name:   "bot-field",
			Hidden: true,
			Usage:  "Honeypot value, for exercising the bot short-circuit",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Value:   commands.FormatText,
			Usage:   "Output format: 'text' or 'json'",
		},
	}
}

func submissionInput(cmd *cli.Command) commands.SubmissionInput {
	return commands.SubmissionInput{
		Name:         cmd.String("name"),
		Email:        cmd.String("email"),
		Phone:        cmd.String("phone"),
		PracticeArea: cmd.String("practice-area"),
		Message:      cmd.String("message"),
		BotField:     cmd.String("bot-field"),
		Files:        cmd.StringSlice("file"),
	}
}

func getIntakeCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "validate-submission",
			Usage: "Check contact form values against the form rules without sending them",
			Flags: formFlags(),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				v, err := container.FormValidator()
				if err != nil {
					return err
				}

				return commands.RunValidateSubmission(
					v,
					container.Logger(),
					commands.DefaultIO().Writer,
					submissionInput(cmd),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "submit",
			Usage: "Validate a contact form and post it to the intake endpoint",
			Flags: append(formFlags(), &cli.StringFlag{
				Name:  "endpoint",
				Usage: "Intake endpoint URL (defaults to SUBMIT_ENDPOINT)",
			}),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				v, err := container.FormValidator()
				if err != nil {
					return err
				}

				submitClient, err := container.SubmitClient(cmd.String("endpoint"))
				if err != nil {
					return err
				}
				defer submitClient.Close()

				return commands.RunSubmit(
					ctx,
					submitClient,
					v.Policy().Upload,
					container.Logger(),
					commands.DefaultIO().Writer,
					submissionInput(cmd),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "show-submission",
			Usage: "Print a stored contact submission",
			Flags: []cli.Flag{
				&cli.Int64Flag{
					Name:     "id",
					Aliases:  []string{"i"},
					Required: true,
					Usage:    "Submission ID",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   commands.FormatText,
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				useCase, err := container.SubmissionUseCase()
				if err != nil {
					return err
				}

				return commands.RunShowSubmission(
					ctx,
					useCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.Int64("id"),
					cmd.String("format"),
				)
			},
		},
	}
}
