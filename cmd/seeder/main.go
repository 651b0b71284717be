package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/bgstats/internal/analysis"
	"github.com/mauv0809/bgstats/internal/config"
	"github.com/mauv0809/bgstats/internal/control"
	"github.com/mauv0809/bgstats/internal/database"
	"github.com/mauv0809/bgstats/internal/importer"
	"github.com/mauv0809/bgstats/internal/metrics"
	"github.com/mauv0809/bgstats/internal/player"
	"github.com/mauv0809/bgstats/internal/rating"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var (
	numMatches int
	envID      int
	outDir     string
)

var rootCmd = &cobra.Command{
	Use:   "seeder",
	Short: "Fill the configured store with synthetic analysed matches",
	RunE: func(cmd *cobra.Command, args []string) error {
		return seed(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().IntVar(&numMatches, "matches", 1000, "Number of matches to import")
	rootCmd.Flags().IntVar(&envID, "env", 0, "Environment to import into")
	rootCmd.Flags().StringVar(&outDir, "out", "", "Also write each match as a msgpack file into this directory")
}

// Create 4 dummy players to use in matches
var dummyPlayers = []string{"Seeder Player A", "Seeder Player B", "Seeder Player C", "Seeder Player D"}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Fatalf("Seeding failed: %s", err)
	}
}

func seed(ctx context.Context) error {
	log.Info("Starting database seeder...")
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	store, teardown, err := database.InitDB(cfg.DatabaseOptions())
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer teardown()

	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", outDir, err)
		}
	}

	ids := control.New()
	imp := importer.New(store, ids, player.New(ids), rating.Default{}, metrics.NewService(prometheus.NewRegistry()))
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	log.Info("Preparing to insert dummy matches...", "total", numMatches, "env", envID)
	startTime := time.Now()
	var imported int
	for i := 0; i < numMatches; i++ {
		rec := randomMatch(rng)
		if outDir != "" {
			if err := writeMatch(rec); err != nil {
				return err
			}
		}
		res := imp.Import(ctx, rec, envID, false)
		if res.Outcome == importer.OutcomeFailed {
			return fmt.Errorf("failed to import match %s: %s", rec.Checksum, res.Reason)
		}
		imported++
		if imported%100 == 0 {
			log.Info("Progress", "imported", imported)
		}
	}

	log.Info("Seeding complete", "imported", imported, "duration", time.Since(startTime))
	return nil
}

func randomMatch(rng *rand.Rand) *analysis.Match {
	i := rng.Intn(len(dummyPlayers))
	j := (i + 1 + rng.Intn(len(dummyPlayers)-1)) % len(dummyPlayers)

	rec := analysis.Sample(uuid.NewString(), dummyPlayers[i], dummyPlayers[j])
	rec.Info.Length = []int{1, 3, 5, 7, 9, 11}[rng.Intn(6)]
	rec.Info.Date = &analysis.Date{Day: 1 + rng.Intn(28), Month: 1 + rng.Intn(12), Year: 2020 + rng.Intn(5)}
	rec.Info.Event = "Seeded"
	winner := rng.Intn(2)
	rec.Info.Winner = &winner
	rec.Stats.X = analysis.SampleStatistics(10+rng.Intn(60), rng.Float64()*20)
	rec.Stats.O = analysis.SampleStatistics(10+rng.Intn(60), rng.Float64()*20)
	rec.Stats.X.Dice.Luck = rng.NormFloat64() * 0.5
	rec.Stats.O.Dice.Luck = -rec.Stats.X.Dice.Luck
	return rec
}

func writeMatch(rec *analysis.Match) error {
	path := filepath.Join(outDir, rec.Checksum+".msgpack")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	if err := analysis.Encode(f, rec, analysis.FormatMsgpack); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
