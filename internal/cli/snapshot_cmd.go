package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/jheinsohn/plantafel/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func resolveSnapshotID(ctx context.Context, a *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("snapshot ID is required")
	}

	snapshots, err := a.Snapshots.List(ctx)
	if err != nil {
		return "", err
	}

	for _, s := range snapshots {
		if s.ID == input {
			return s.ID, nil
		}
	}

	var matches []string
	for _, s := range snapshots {
		if strings.HasPrefix(s.ID, input) {
			matches = append(matches, s.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("snapshot not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("snapshot ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func newSnapshotCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Manage organisation snapshots",
	}

	cmd.AddCommand(
		newSnapshotImportCmd(a),
		newSnapshotListCmd(a),
		newSnapshotShowCmd(a),
		newSnapshotRemoveCmd(a),
	)

	return cmd
}

func newSnapshotImportCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import an organisation snapshot from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.Imports.ImportSnapshot(context.Background(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Imported snapshot %s (%d roles, %d cost types)\n",
				result.SnapshotID, result.RoleCount, result.CostTypeCount)
			return nil
		},
	}
}

func newSnapshotListCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List organisation snapshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshots, err := a.Snapshots.List(context.Background())
			if err != nil {
				return err
			}

			if len(snapshots) == 0 {
				fmt.Println("No snapshots found.")
				return nil
			}

			fmt.Printf("%s\n", formatter.FormatSnapshotList(snapshots))
			return nil
		},
	}
}

func newSnapshotShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one snapshot with its role table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			id, err := resolveSnapshotID(ctx, a, args[0])
			if err != nil {
				return err
			}

			snapshot, err := a.Snapshots.GetByID(ctx, id)
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.FormatSnapshotShow(snapshot))
			return nil
		},
	}
}

func newSnapshotRemoveCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			id, err := resolveSnapshotID(ctx, a, args[0])
			if err != nil {
				return err
			}

			if err := a.Snapshots.Delete(ctx, id); err != nil {
				return err
			}

			fmt.Printf("Removed snapshot %s\n", id)
			return nil
		},
	}
}
