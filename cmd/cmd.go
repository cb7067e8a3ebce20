// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// configCommand handles configuration file management.
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "Write a starter configuration file",
				Action: r.ConfigInit,
			},
		},
	}
}

// schemaCommand handles keyspace and table management.
func schemaCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "schema",
		Usage: "Keyspace and table management",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Create the keyspace and tables if they do not exist",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "replicas",
						Usage: "Replication factor when creating the keyspace",
					},
				},
				Action: r.SchemaInit,
			},
		},
	}
}

// pingCommand reports whether the cluster answers queries.
func pingCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "ping",
		Usage:  "Check connectivity to the Cassandra cluster",
		Action: r.Ping,
	}
}

// artistCommand handles artist operations.
func artistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "artist",
		Aliases: []string{"artists"},
		Usage:   "Artist operations",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Create an artist",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Usage:    "Artist name",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "country",
						Usage: "Country of origin",
					},
					&cli.StringSliceFlag{
						Name:  "award",
						Usage: "Award held by the artist (repeatable)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.ArtistAdd,
			},
			{
				Name:  "get",
				Usage: "Print one artist",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.ArtistGet,
			},
			{
				Name:  "rename",
				Usage: "Change an artist's name",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Usage:    "New artist name",
						Required: true,
					},
				},
				Action: r.ArtistRename,
			},
			{
				Name:  "award",
				Usage: "Grant awards, skipping ones the artist already holds",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:     "award",
						Usage:    "Award to grant (repeatable)",
						Required: true,
					},
				},
				Action: r.ArtistAward,
			},
			{
				Name:  "rm",
				Usage: "Delete an artist",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.ArtistRemove,
			},
			{
				Name:  "ls",
				Usage: "List every artist",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.ArtistList,
			},
			{
				Name:  "count",
				Usage: "Count the artists from a country",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "country",
						Usage:    "Country to count artists for",
						Required: true,
					},
				},
				Action: r.ArtistCount,
			},
		},
	}
}

// songCommand handles song operations.
func songCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "song",
		Aliases: []string{"songs"},
		Usage:   "Song operations",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Create a song for an existing artist",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "title",
						Usage:    "Song title",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "artist",
						Usage:    "Artist ID the song belongs to",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "genre",
						Usage: "Genre label",
					},
					&cli.IntFlag{
						Name:  "year",
						Usage: "Release year",
					},
					&cli.IntFlag{
						Name:     "duration",
						Usage:    "Duration in seconds",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.SongAdd,
			},
			{
				Name:  "get",
				Usage: "Print one song",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.SongGet,
			},
			{
				Name:  "rm",
				Usage: "Delete a song",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.SongRemove,
			},
			{
				Name:  "ls",
				Usage: "List songs, optionally filtered by artist or genre",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "artist",
						Usage: "Only songs credited to this artist ID",
					},
					&cli.StringFlag{
						Name:  "genre",
						Usage: "Only songs in this genre",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.SongList,
			},
		},
	}
}

// recordingCommand handles recording operations.
func recordingCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "recording",
		Aliases: []string{"recordings", "rec"},
		Usage:   "Recording operations",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Register a recording of an existing song",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "song",
						Usage:    "Song ID the recording captures",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "artist",
						Usage: "Artist ID, defaults to the song's artist",
					},
					&cli.IntFlag{
						Name:     "duration",
						Usage:    "Duration in seconds",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "on",
						Usage:    "Recording date (YYYY-MM-DD)",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.RecordingAdd,
			},
			{
				Name:  "get",
				Usage: "Print one recording",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.RecordingGet,
			},
			{
				Name:  "rm",
				Usage: "Delete a recording",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.RecordingRemove,
			},
			{
				Name:  "ls",
				Usage: "List recordings, optionally for a single day",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "on",
						Usage: "Only recordings made on this date (YYYY-MM-DD)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.RecordingList,
			},
			{
				Name:  "purge",
				Usage: "Delete every recording made on a day",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "on",
						Usage:    "Recording date to purge (YYYY-MM-DD)",
						Required: true,
					},
				},
				Action: r.RecordingPurge,
			},
		},
	}
}

// exportCommand dumps the catalog to files.
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export the catalog to JSON or CSV files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "format",
				Usage: "Export format (json or csv)",
				Value: "json",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Output directory",
			},
			&cli.IntFlag{
				Name:  "rps",
				Usage: "Rows encoded per second",
			},
		},
		Action: r.Export,
	}
}

// menuCommand returns the top-level interactive menu command.
func menuCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "menu",
		Aliases: []string{"tui", "interactive"},
		Usage:   "Launch the interactive catalog menu",
		Action:  r.Menu,
	}
}
