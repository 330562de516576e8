package cli

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/dotstitch/dotstitch/pkg/store"
)

// storeCommand creates the store command for inspecting and managing
// persisted placements.
func (c *CLI) storeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Inspect and manage persisted placements",
	}
	cmd.AddCommand(c.storeShowCommand())
	cmd.AddCommand(c.storeDeleteCommand())
	return cmd
}

// storeShowCommand prints a player's placement records as JSON.
func (c *CLI) storeShowCommand() *cobra.Command {
	var name, number string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print a player's placement records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withPositions(cmd.Context(), func(ctx context.Context, positions *store.Positions) error {
				key := store.PlayerKey(name, number)
				recs, err := positions.Load(ctx, key)
				if err != nil {
					return err
				}
				if len(recs) == 0 {
					printInfo("no placements stored for %s", key)
					return nil
				}
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(recs)
			})
		},
	}

	cmd.Flags().StringVarP(&name, "player", "p", "", "player name (required)")
	cmd.Flags().StringVarP(&number, "number", "n", "", "jersey number")
	_ = cmd.MarkFlagRequired("player")
	return cmd
}

// storeDeleteCommand removes a player's placement records so the next
// composition starts from defaults.
func (c *CLI) storeDeleteCommand() *cobra.Command {
	var name, number string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a player's placement records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withPositions(cmd.Context(), func(ctx context.Context, positions *store.Positions) error {
				key := store.PlayerKey(name, number)
				if err := positions.Delete(ctx, key); err != nil {
					return err
				}
				printSuccess("deleted placements for %s", key)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&name, "player", "p", "", "player name (required)")
	cmd.Flags().StringVarP(&number, "number", "n", "", "jersey number")
	_ = cmd.MarkFlagRequired("player")
	return cmd
}

// withPositions opens the configured store backend, runs fn, and closes it.
func (c *CLI) withPositions(ctx context.Context, fn func(context.Context, *store.Positions) error) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	backend, err := cfg.OpenBackend(ctx)
	if err != nil {
		return err
	}
	positions := store.NewPositions(backend)
	defer positions.Close()

	return fn(ctx, positions)
}
