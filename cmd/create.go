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
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnclimate/internal/iodb"
	"github.com/gnames/gnclimate/internal/ioschema"
	"github.com/gnames/gnclimate/pkg/db"
	"github.com/spf13/cobra"
)

// getCreateCmd returns the create command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getCreateCmd() *cobra.Command {
	var forceCreate bool

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create database schema for climate tables",
		Long: `Create the gnclimate database schema from scratch.

This command:
  1. Connects to PostgreSQL using configuration settings
  2. Checks for existing tables and prompts for confirmation
  3. Creates all tables using GORM AutoMigrate
  4. Sets "C" collation on region names, so the database
     sorts them like CSV output

The database keeps every run of series, regions and hexes in
long form: one row per cell or area, variable, year and month.

Use --force to skip confirmation and drop existing tables.

Examples:
  gnclimate create
  gnclimate create --force
  gnclimate create -f`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, args, forceCreate)
		},
	}

	createCmd.Flags().BoolVarP(&forceCreate, "force", "f",
		false, "drop existing tables without confirmation")

	return createCmd
}

func runCreate(
	cmd *cobra.Command,
	_ []string,
	force bool,
) error {
	ctx := context.Background()

	op, err := connect(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	hasTables, err := op.HasTables(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if hasTables && !force {
		gn.Warn("\nWarning: Database contains existing tables.")
		gn.Warn("Creating schema will drop ALL existing tables and data.")
		fmt.Print("\nDo you want to continue? (yes/no): ")

		ok, err := confirm(cmd.InOrStdin())
		if err != nil {
			gn.Warn("Failed to read user input")
			return err
		}
		if !ok {
			gn.Info("Aborted. No changes made.")
			return nil
		}
		force = true
	}

	sm := ioschema.NewManager(op)

	gn.Info("Creating schema using GORM AutoMigrate...")
	if err := sm.Create(ctx, cfg, force); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("\nDatabase schema creation complete!")
	gn.Info("\nNext steps:")
	gn.Info("  - Run 'gnclimate series -f postgres' to store series")
	gn.Info("  - Run 'gnclimate regions -f postgres' to store regions")

	return nil
}

// connect opens the configured PostgreSQL database.
func connect(ctx context.Context) (db.Operator, error) {
	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return nil, err
	}
	gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
		cfg.Database.User, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.Database)
	return op, nil
}

// confirm reads one answer line, only "yes" and "y" are accepted.
func confirm(r io.Reader) (bool, error) {
	if r == nil {
		r = os.Stdin
	}
	response, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "yes" || response == "y", nil
}
