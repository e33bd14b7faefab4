package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fleet-backend/internal/bootstrap"
	"fleet-backend/internal/shared/config"
	"fleet-backend/internal/vehicles"
)

var importDryRun bool

var vehiclesCmd = &cobra.Command{
	Use:   "vehicles",
	Short: "Manage the vehicle roster",
}

var vehiclesImportCmd = &cobra.Command{
	Use:   "import <file.csv|file.xlsx>",
	Short: "Import vehicles from a CSV or XLSX file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := bootstrap.Build(cmd.Context(), config.Load())
		if err != nil {
			return err
		}
		defer app.Close()
		return importVehicles(cmd.Context(), cmd.OutOrStdout(), app, args[0], importDryRun)
	},
}

// errImportNotPersisted guards against importing into the in-memory roster
// that dev builds fall back to without a database.
var errImportNotPersisted = errors.New("DATABASE_URL is required to persist an import; use --dry-run to preview")

func importVehicles(ctx context.Context, w io.Writer, app *bootstrap.App, path string, dryRun bool) error {
	if app.DB == nil && !dryRun {
		return errImportNotPersisted
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	parsed, err := vehicles.ParseFile(filepath.Base(path), f)
	if err != nil {
		return err
	}
	result, err := app.VehiclesService.Import(ctx, parsed, dryRun)
	if err != nil {
		return err
	}
	printImport(w, result, dryRun)
	return nil
}

func printImport(w io.Writer, result vehicles.ImportResult, dryRun bool) {
	green := color.New(color.FgGreen, color.Bold)
	yellow := color.New(color.FgYellow)

	if dryRun {
		green.Fprintf(w, "%d vehicle(s) ready to import (dry run)\n", len(result.Rows))
	} else {
		green.Fprintf(w, "Imported %d vehicle(s)\n", len(result.Created))
		for _, v := range result.Created {
			fmt.Fprintf(w, "  %s  %s\n", v.ID, v.DisplayName())
		}
	}
	for _, msg := range result.Errors {
		yellow.Fprintf(w, "  skipped: %s\n", msg)
	}
}

func init() {
	vehiclesImportCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Parse and validate without saving")
	vehiclesCmd.AddCommand(vehiclesImportCmd)
	rootCmd.AddCommand(vehiclesCmd)
}
