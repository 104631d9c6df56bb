/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"

	"github.com/gnames/gn"
	"github.com/gnames/gnclimate/internal/iodb"
	"github.com/gnames/gnclimate/internal/ioschema"
	"github.com/gnames/gnclimate/pkg/schema"
	"github.com/spf13/cobra"
)

// getMigrateCmd returns the migrate command.
func getMigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrate database schema to latest version",
		Long: `Migrate brings the gnclimate schema up to date after an upgrade.

GORM AutoMigrate adds missing tables, columns and indexes.
It never deletes columns or tables, stored runs are kept.

The database must be initialized with 'gnclimate create'.

Examples:
  gnclimate migrate`,
		RunE: runMigrate,
	}

	return migrateCmd
}

func runMigrate(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	op, err := connect(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	exists, err := op.TableExists(ctx, schema.Run{}.TableName())
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if !exists {
		err = iodb.EmptyDatabaseError(cfg.Database.Host, cfg.Database.Database)
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Migrating schema to latest version...")
	if err = ioschema.NewManager(op).Migrate(ctx, cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Schema is now up to date.")
	return nil
}
