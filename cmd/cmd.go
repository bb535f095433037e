// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// addCommand records a new book
func addCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Add a book to the catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "title",
				Aliases:  []string{"t"},
				Usage:    "Book title",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "author",
				Aliases:  []string{"a"},
				Usage:    "Book author",
				Required: true,
			},
			&cli.IntFlag{
				Name:     "year",
				Aliases:  []string{"y"},
				Usage:    "Publication year",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "genre",
				Aliases: []string{"g"},
				Usage:   "Genre",
			},
			&cli.BoolFlag{
				Name:  "read",
				Usage: "Mark the book as read",
			},
		},
		Action: r.AddBook,
	}
}

// removeCommand deletes books by title or by id
func removeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "remove",
		Aliases: []string{"rm"},
		Usage:   "Remove books by exact title (ignoring case) or by id",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "title",
				Aliases: []string{"t"},
				Usage:   "Remove every book with this title",
			},
			&cli.Int64SliceFlag{
				Name:  "id",
				Usage: "Remove the book with this id (repeatable). File catalogs renumber ids on every load, so run list first",
			},
		},
		Action: r.RemoveBooks,
	}
}

// searchCommand finds books by title or author
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search books by title or author",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "query",
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "by",
				Usage: "Field to search (title or author)",
				Value: "title",
			},
			&cli.BoolFlag{
				Name:  "exact",
				Usage: "Match the whole field instead of a substring",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print JSON output",
			},
		},
		Action: r.SearchBooks,
	}
}

// listCommand prints every book
func listCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "Display all books",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print JSON output",
			},
		},
		Action: r.ListBooks,
	}
}

// statsCommand prints catalog statistics
func statsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "stats",
		Usage:  "Show total books and percentage read",
		Action: r.Stats,
	}
}

// exportCommand renders the catalog as csv, markdown or text
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export the catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Export format (csv, markdown, text)",
				Value:   "csv",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (defaults to stdout)",
			},
		},
		Action: r.Export,
	}
}

// setupCommand initializes configuration and database
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration and database",
		Commands: []*cli.Command{
			{
				Name:   "config",
				Usage:  "Write the default configuration file to the --config path",
				Action: r.SetupConfig,
			},
			{
				Name:  "database",
				Usage: "Create the books table in the configured database",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "url",
						Usage: "Database url, overrides DATABASE_URL and the config file",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// menuCommand launches the interactive console menu
func menuCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "menu",
		Usage: "Launch the interactive menu",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Where to write logs while the menu is open",
				Value: "./tmp/shelf-menu.log",
			},
		},
		Action: r.Menu,
	}
}

// serveCommand starts the web form front end
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the web front end",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Open the app in the default browser",
			},
		},
		Action: r.Serve,
	}
}
