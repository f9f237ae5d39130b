package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"heartmatch-backend/internal/matching"

	"github.com/spf13/cobra"
)

var (
	scoreA string
	scoreB string
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Print the compatibility breakdown of profile --b as seen by profile --a",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx := context.Background()
		st, err := openStores(ctx, cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		a, err := st.profiles.GetProfile(ctx, scoreA)
		if err != nil {
			return fmt.Errorf("failed to get profile %s: %w", scoreA, err)
		}
		b, err := st.profiles.GetProfile(ctx, scoreB)
		if err != nil {
			return fmt.Errorf("failed to get profile %s: %w", scoreB, err)
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(matching.Explain(a, b))
	},
}

func init() {
	scoreCmd.Flags().StringVar(&scoreA, "a", "", "requester profile id")
	scoreCmd.Flags().StringVar(&scoreB, "b", "", "candidate profile id")
	scoreCmd.MarkFlagRequired("a")
	scoreCmd.MarkFlagRequired("b")
}
