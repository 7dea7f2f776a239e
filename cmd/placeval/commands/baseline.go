package commands

import (
	"context"
	"errors"
	"fmt"

	"placeval/pkg/places"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newBaselineCommand() *cobra.Command {
	var (
		corpusPath string
		label      string
	)

	cmd := &cobra.Command{
		Use:   "baseline",
		Short: "Score the constant-label baseline against a corpus",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := resolveString(corpusPath, appConfig.Corpus)
			if path == "" {
				return errors.New("corpus path is required")
			}
			labelResolved := resolveString(label, appConfig.Label)
			if labelResolved == "" {
				labelResolved = places.DefaultLabel
			}

			logger.Info("running baseline",
				zap.String("corpus", path),
				zap.String("label", labelResolved),
			)

			summary, _, err := places.RunBaseline(context.Background(), path, labelResolved)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&corpusPath, "corpus", "", "path to the tab-separated evaluation corpus")
	cmd.Flags().StringVar(&label, "label", "", "constant label to predict (default London)")

	return cmd
}
