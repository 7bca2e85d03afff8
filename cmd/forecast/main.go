// forecast computes crop price forecasts offline from a JSON export of the
// crops table.
//
// Usage:
//
//	forecast predict --file crops.json --id <crop-id> [--seed N] [--now 2025-01-15]
//	forecast seasonal --category wheat
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v2"

	"agrimarket/models"
	"agrimarket/prediction"
	"agrimarket/repository"
)

const dateLayout = "2006-01-02"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "forecast",
		Usage: "Six month crop price forecasts from a crops export",
		Commands: []*cli.Command{
			predictCommand(),
			seasonalCommand(),
		},
	}
}

func predictCommand() *cli.Command {
	return &cli.Command{
		Name:  "predict",
		Usage: "Forecast the price of one crop against the rest of the export",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "Path to a JSON array of crops",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "id",
				Usage:    "ID of the crop to forecast",
				Required: true,
			},
			&cli.Uint64Flag{
				Name:  "seed",
				Usage: "Seed of the random trend used when no comparable crop exists",
			},
			&cli.StringFlag{
				Name:  "now",
				Usage: "Reference date (YYYY-MM-DD), defaults to today",
			},
			&cli.StringFlag{
				Name:  "format",
				Value: "table",
				Usage: "Output format (table, json)",
			},
		},
		Action: runPredict,
	}
}

func runPredict(c *cli.Context) error {
	crops, err := readCrops(c.String("file"))
	if err != nil {
		return err
	}
	store := repository.NewMemoryCropStore(crops...)

	var opts []prediction.Option
	if c.IsSet("seed") {
		seed := c.Uint64("seed")
		opts = append(opts, prediction.WithRandom(rand.New(rand.NewPCG(seed, seed)).Float64))
	}
	if c.IsSet("now") {
		now, err := time.Parse(dateLayout, c.String("now"))
		if err != nil {
			return fmt.Errorf("invalid --now %q: %w", c.String("now"), err)
		}
		opts = append(opts, prediction.WithClock(func() time.Time { return now }))
	}
	engine := prediction.New(opts...)

	ctx := context.Background()
	target, err := store.ByID(ctx, c.String("id"))
	if err != nil {
		return fmt.Errorf("crop %q: %w", c.String("id"), err)
	}
	pool, err := store.All(ctx)
	if err != nil {
		return err
	}

	forecast := engine.GenerateForecast(target, pool)
	if c.String("format") == "json" {
		enc := json.NewEncoder(c.App.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(models.ForecastResponse{
			CropID:       target.ID,
			CropName:     target.Name,
			CurrentPrice: target.Price,
			GeneratedAt:  engine.Now(),
			Rows:         prediction.Rows(target.Price, forecast),
		})
	}
	return writeForecast(c.App.Writer, target, forecast)
}

func writeForecast(out io.Writer, target models.Crop, forecast models.Forecast) error {
	fmt.Fprintf(out, "%s (%s, %s) current price %.2f\n", target.Name, target.District, target.State, target.Price)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "MONTH\tPRICE\tVARIATION\t")
	for _, row := range prediction.Rows(target.Price, forecast) {
		fmt.Fprintf(w, "%s\t%.2f\t%+.2f%%\t\n", row.Month, row.PredictedPrice, row.VariationPercent)
	}
	return w.Flush()
}

func seasonalCommand() *cli.Command {
	return &cli.Command{
		Name:  "seasonal",
		Usage: "Print the monthly seasonal factors applied to a crop name",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "category",
				Aliases:  []string{"c"},
				Usage:    "Crop name, matched case-insensitively",
				Required: true,
			},
		},
		Action: func(c *cli.Context) error {
			w := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "MONTH\tFACTOR")
			for m := time.January; m <= time.December; m++ {
				fmt.Fprintf(w, "%s\t%.2f\n", m.String()[:3], prediction.SeasonalFactor(c.String("category"), m))
			}
			return w.Flush()
		},
	}
}

func readCrops(path string) ([]models.Crop, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read crops file: %w", err)
	}
	var crops []models.Crop
	if err := json.Unmarshal(data, &crops); err != nil {
		return nil, fmt.Errorf("failed to parse crops file: %w", err)
	}
	return crops, nil
}
