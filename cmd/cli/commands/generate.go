package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/fundplan/pkg/dataset"
)

// GenerateCmd creates the generate command
func GenerateCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <dir>",
		Short: "Write a synthetic sample dataset into the given directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			seed, _ := cmd.Flags().GetInt64("seed")

			app.Logger.Info("Generating sample data",
				zap.String("dir", dir),
				zap.Int64("seed", seed))

			if err := dataset.WriteSampleData(dir, seed); err != nil {
				return fmt.Errorf("failed to generate sample data: %w", err)
			}

			fmt.Printf("\nSample data written to %s\n", dir)
			fmt.Println("  resource_requests.csv")
			fmt.Println("  constraints.csv")
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().Int64("seed", dataset.DefaultSeed, "Seed for the synthetic data generator")

	return cmd
}
