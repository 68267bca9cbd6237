package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/naka-gawa/portfolio-stats/internal/config"
	"github.com/naka-gawa/portfolio-stats/internal/domain"
	"github.com/naka-gawa/portfolio-stats/internal/gateway"
	"github.com/naka-gawa/portfolio-stats/internal/usecase"
	"github.com/spf13/cobra"
)

var imagesCmd = &cobra.Command{
	Use:   "images",
	Short: "Fetches a representative Unsplash photo for each portfolio topic",
	Long: `Searches Unsplash once per built-in topic and prints the top-ranked photo's
URLs and dimensions. A failed topic is reported and the others continue.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		logger := newLogger(cmd, cmd.ErrOrStderr(), cfg.LogLevel)

		orientation, _ := cmd.Flags().GetString("orientation")
		concurrency, _ := cmd.Flags().GetInt("concurrency")
		output, _ := cmd.Flags().GetString("output")

		// A missing access key fails here, once, before any topic is searched.
		unsplashGateway, err := gateway.NewUnsplashGateway(cfg.Unsplash, nil, logger)
		if err != nil {
			return err
		}
		collector := usecase.NewImageCollector(unsplashGateway, domain.DefaultTopics(), orientation, concurrency, logger)

		fmt.Fprintln(cmd.OutOrStdout(), "Fetching images from Unsplash...")
		lookups := collector.Collect(ctx)
		printImageLookups(cmd.OutOrStdout(), lookups)

		if output != "" {
			if err := gateway.WriteJSON(output, lookups); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(imagesCmd)
	imagesCmd.Flags().String("orientation", domain.DefaultOrientation, "Photo orientation: landscape, portrait or squarish")
	imagesCmd.Flags().Int("concurrency", 1, "Number of topics searched at the same time")
	imagesCmd.Flags().StringP("output", "o", "", "Optional path to also write the lookups as JSON")
}

func printImageLookups(w io.Writer, lookups []domain.ImageLookup) {
	failed := color.New(color.FgRed)
	for _, lookup := range lookups {
		if lookup.Image == nil {
			failed.Fprintf(w, "%s: Failed to fetch image\n", lookup.Topic.Name)
			fmt.Fprintln(w)
			continue
		}
		fmt.Fprintf(w, "%s: %s\n", lookup.Topic.Name, lookup.Image.Regular)
		fmt.Fprintf(w, "  Description: %s\n", lookup.Image.Description)
		fmt.Fprintf(w, "  Dimensions: %dx%d\n", lookup.Image.Width, lookup.Image.Height)
		fmt.Fprintln(w)
	}
}
