package main

import (
	"context"

	"github.com/desertthunder/fluentctl/internal/shared"
	"github.com/urfave/cli/v3"
)

// Init writes a starter config.toml the user can fill in.
//
// Credentials from FLUENT_URL, FLUENT_USER and FLUENT_PASSWORD always override
// the file, so the config is optional for environments that export them.
func (r *Runner) Init(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")

	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	r.writePlain("✓ Created %s\n", path)
	r.writePlain("Fill in [api] base_url, username and password, or export FLUENT_URL, FLUENT_USER and FLUENT_PASSWORD.\n")

	return nil
}
