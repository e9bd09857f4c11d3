// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func contactRefFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "email",
			Aliases: []string{"e"},
			Usage:   "Contact email address",
		},
		&cli.Int64Flag{
			Name:  "id",
			Usage: "Contact numeric ID",
		},
	}
}

// getContactCommand looks up a single contact by email or ID
func getContactCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "get-contact",
		Usage: "Fetch a contact by email or ID",
		Flags: append(contactRefFlags(),
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		),
		Action: r.ContactGet,
	}
}

func createContactCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "create-contact",
		Usage: "Create a new contact",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "email",
				Aliases:  []string{"e"},
				Usage:    "Contact email address",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "first-name",
				Usage: "Contact first name",
			},
			&cli.StringFlag{
				Name:  "last-name",
				Usage: "Contact last name",
			},
			&cli.StringFlag{
				Name:  "status",
				Usage: "Subscription status",
				Value: "subscribed",
			},
			&cli.StringFlag{
				Name:  "tags",
				Usage: "Comma-separated tag IDs to attach",
			},
			&cli.StringFlag{
				Name:  "lists",
				Usage: "Comma-separated list IDs to attach",
			},
		},
		Action: r.ContactCreate,
	}
}

func deleteContactCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "delete-contact",
		Usage:  "Delete a contact by email or ID",
		Flags:  contactRefFlags(),
		Action: r.ContactDelete,
	}
}

func membershipFlags(kind string) []cli.Flag {
	return append(contactRefFlags(),
		&cli.StringFlag{
			Name:     kind,
			Usage:    "Comma-separated " + kind[:len(kind)-1] + " IDs",
			Required: true,
		},
		&cli.BoolFlag{
			Name:    "append",
			Aliases: []string{"a"},
			Usage:   "Add to existing " + kind + " instead of replacing them",
		},
	)
}

// updateContactTagsCommand reconciles a contact's tags against the requested set
func updateContactTagsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "update-contact-tags",
		Usage:  "Replace or append a contact's tags",
		Flags:  membershipFlags("tags"),
		Action: r.ContactTags,
	}
}

func updateContactListsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "update-contact-lists",
		Usage:  "Replace or append a contact's lists",
		Flags:  membershipFlags("lists"),
		Action: r.ContactLists,
	}
}

func taxonomyListFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output JSON instead of CSV",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print JSON output",
			Value: true,
		},
	}
}

func taxonomyCreateFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "title",
			Aliases:  []string{"t"},
			Usage:    "Display title",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "slug",
			Aliases:  []string{"s"},
			Usage:    "URL-safe slug",
			Required: true,
		},
	}
}

func getTagsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "get-tags",
		Usage:  "List all tags as CSV",
		Flags:  taxonomyListFlags(),
		Action: r.TagList,
	}
}

func createTagCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "create-tag",
		Usage:  "Create a new tag",
		Flags:  taxonomyCreateFlags(),
		Action: r.TagCreate,
	}
}

func deleteTagCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "delete-tag",
		Usage: "Delete a tag by ID",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:     "id",
				Usage:    "Tag ID",
				Required: true,
			},
		},
		Action: r.TagDelete,
	}
}

func getListsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "get-lists",
		Usage:  "List all lists as CSV",
		Flags:  taxonomyListFlags(),
		Action: r.ListList,
	}
}

func createListCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "create-list",
		Usage:  "Create a new list",
		Flags:  taxonomyCreateFlags(),
		Action: r.ListCreate,
	}
}

func updateListCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "update-list",
		Usage: "Update a list's title and/or slug",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:     "id",
				Usage:    "List ID",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "title",
				Aliases: []string{"t"},
				Usage:   "New display title",
			},
			&cli.StringFlag{
				Name:    "slug",
				Aliases: []string{"s"},
				Usage:   "New URL-safe slug",
			},
		},
		Action: r.ListUpdate,
	}
}

func deleteListCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "delete-list",
		Usage: "Delete a list by ID",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:     "id",
				Usage:    "List ID",
				Required: true,
			},
		},
		Action: r.ListDelete,
	}
}

func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export all tags and lists to CSV files with a manifest",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output directory",
			},
		},
		Action: r.Export,
	}
}

func browseCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "browse",
		Usage:  "Browse tags and lists interactively",
		Action: r.Browse,
	}
}

func initCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Create a starter config.toml",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Init,
	}
}
