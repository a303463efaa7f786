// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func formatFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format (text, markdown, csv, json)",
			Value:   "text",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Write to file instead of stdout",
		},
	}
}

// setupCommand handles setup operations for the configuration file and credential database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage: "Initialize the credential database and run migrations",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "rollback",
						Usage: "Roll back the most recently applied migration instead",
					},
				},
				Action: r.SetupDatabase,
			},
			{
				Name:  "config",
				Usage: "Write the default configuration file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "path",
						Usage: "Destination path (defaults to --config)",
					},
				},
				Action: r.SetupConfig,
			},
		},
	}
}

// authCommand handles authentication operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage the session",
		Commands: []*cli.Command{
			{
				Name:  "register",
				Usage: "Create an account and log in",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Usage: "Username", Required: true},
					&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Email address", Required: true},
					&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "Password (prompted when omitted)"},
				},
				Action: r.AuthRegister,
			},
			{
				Name:  "login",
				Usage: "Log in and persist the access token",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Usage: "Username", Required: true},
					&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "Password (prompted when omitted)"},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "logout",
				Usage:  "Forget the persisted access token",
				Action: r.AuthLogout,
			},
			{
				Name:   "status",
				Usage:  "Show who is logged in",
				Action: r.AuthStatus,
			},
		},
	}
}

// plantsCommand handles listing operations
func plantsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "plants",
		Aliases: []string{"p"},
		Usage:   "Browse, like and list plants",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "Show every listing",
				Flags:   formatFlags(),
				Action:  r.PlantsList,
			},
			{
				Name:      "like",
				Usage:     "Like a listing",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action:    r.PlantsLike,
			},
			{
				Name:      "unlike",
				Usage:     "Remove your like from a listing",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action:    r.PlantsUnlike,
			},
			{
				Name:  "add",
				Usage: "Create a listing",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "Plant name", Required: true},
					&cli.StringFlag{Name: "description", Usage: "Description", Required: true},
					&cli.StringFlag{Name: "price", Usage: "Price, as a decimal number", Required: true},
					&cli.StringFlag{Name: "photo-url", Usage: "Photo URL"},
					&cli.IntFlag{Name: "sample", Usage: "Use the Nth sample photo (see 'plants samples')"},
				},
				Action: r.PlantsAdd,
			},
			{
				Name:   "mine",
				Usage:  "Show your listings and who liked them",
				Flags:  formatFlags(),
				Action: r.PlantsMine,
			},
			{
				Name:   "samples",
				Usage:  "Show the suggested sample photos",
				Action: r.PlantsSamples,
			},
		},
	}
}

// apiCommand handles direct API calls
func apiCommand(r *Runner) *cli.Command {
	pathArg := []cli.Argument{&cli.StringArg{Name: "path"}}
	prettyFlag := &cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output", Value: true}

	return &cli.Command{
		Name:  "api",
		Usage: "Direct calls to the backend, authenticated when logged in",
		Commands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "Direct GET, prints raw JSON",
				Arguments: pathArg,
				Flags:     []cli.Flag{prettyFlag},
				Action:    r.APIGet,
			},
			{
				Name:      "post",
				Usage:     "Direct POST with JSON body",
				Arguments: pathArg,
				Flags: []cli.Flag{
					prettyFlag,
					&cli.StringFlag{
						Name:    "data",
						Aliases: []string{"d"},
						Usage:   "JSON body to send",
					},
				},
				Action: r.APIPost,
			},
			{
				Name:      "delete",
				Usage:     "Direct DELETE",
				Arguments: pathArg,
				Flags:     []cli.Flag{prettyFlag},
				Action:    r.APIDelete,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive terminal UI",
		Action:  r.TUI,
	}
}

// devServerCommand serves the in-memory reference backend.
func devServerCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "dev-server",
		Usage: "Run the in-memory reference backend",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "host", Usage: "Listen host (defaults to server.host)"},
			&cli.IntFlag{Name: "port", Usage: "Listen port (defaults to server.port)"},
			&cli.BoolFlag{Name: "seed", Usage: "Create the demo/demo user with a few listings"},
		},
		Action: r.DevServer,
	}
}
