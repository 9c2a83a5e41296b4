package main

import (
	"fmt"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/plantmetrics/backend-go/internal/inventory"
	"github.com/plantmetrics/backend-go/internal/repository"
	"github.com/plantmetrics/backend-go/pkg/logger"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func openDB(c *cli.Context) (*sqlx.DB, error) {
	db, err := sqlx.Open("pgx", c.String("db-url"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

func runInventorySeed(c *cli.Context) error {
	db, err := openDB(c)
	if err != nil {
		return err
	}
	defer db.Close()

	tenantID := c.String("tenant")
	repo := repository.NewInventoryRepository(db)
	seeder := inventory.NewSeeder(repo, c.Int("batch-size"))

	seeded, err := seeder.EnsureSeeded(c.Context, tenantID)
	if err != nil {
		return fmt.Errorf("inventory seeding failed: %w", err)
	}

	count, err := repo.CountOnHand(c.Context, tenantID)
	if err != nil {
		return err
	}

	logger.Log.Info().Str("tenant_id", tenantID).Bool("seeded", seeded).Int("on_hand_rows", count).
		Msg("inventory seed completed")

	return nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		logger.Log.Debug().Err(err).Msg("could not load .env file")
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Seed the database with initial data",
		Commands: []*cli.Command{
			{
				Name:  "inventory",
				Usage: "Seed on-hand inventory rows for a tenant that has none",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:     "tenant",
						Usage:    "Tenant ID to seed",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Rows per insert batch",
						Value: inventory.DefaultBatchSize,
					},
				},
				Action: runInventorySeed,
			},
			{
				Name:  "demo",
				Usage: "Create a demo tenant with items, warehouses and metric snapshots",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:  "name",
						Usage: "Demo tenant name",
						Value: "Demo Manufacturing Co",
					},
					&cli.StringFlag{
						Name:  "industry",
						Usage: "Tenant industry vertical",
						Value: "manufacturing",
					},
					&cli.IntFlag{
						Name:  "items",
						Usage: "Number of demo items to create",
						Value: 40,
					},
					&cli.IntFlag{
						Name:  "warehouses",
						Usage: "Number of demo warehouses to create",
						Value: 3,
					},
				},
				Action: runDemoSeed,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("seed command failed")
	}
}
