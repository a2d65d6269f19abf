package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"resumatch/db"
)

// SchemaAction prints the relational contract of the scoring backend.
func SchemaAction(ctx context.Context, cmd *cli.Command) error {
	fmt.Print(db.Schema)
	return nil
}
