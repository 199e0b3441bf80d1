package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newCapacityCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "capacity",
		Short: "Manage capacity overrides",
	}

	cmd.AddCommand(newCapacityImportCmd(a))

	return cmd
}

func newCapacityImportCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import capacity overrides from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.Imports.ImportCapacity(context.Background(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Imported %d capacity overrides for %d roles\n",
				result.OverrideCount, result.RoleCount)
			return nil
		},
	}
}
