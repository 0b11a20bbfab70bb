package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"

	"queue-sim-service/internal/adapters/repositories"
	"queue-sim-service/internal/config"
	"queue-sim-service/internal/platform/db"
)

// dbtool prepares a Postgres run archive: it applies the schema and
// lists the most recent runs as a smoke check.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()
	sqlDB, err := db.Open(ctx, databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer sqlDB.Close()

	if err := initSchema(ctx, sqlDB); err != nil {
		log.Fatal(err)
	}

	limit := config.GetInt("DBTOOL_VERIFY_LIMIT", 5)
	if err := listRecentRuns(ctx, sqlDB, limit); err != nil {
		log.Fatal(err)
	}
}

func initSchema(ctx context.Context, sqlDB *sql.DB) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitPostgresSchema(ctx, sqlDB); err != nil {
		return err
	}
	log.Println("Schema ready.")
	return nil
}

func listRecentRuns(ctx context.Context, sqlDB *sql.DB, limit int) error {
	archive := repositories.NewSQLRunArchive(sqlDB)
	summaries, err := archive.ListRuns(ctx, limit)
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		log.Println("Archive is empty.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tCREATED\tCUSTOMERS\tMODE\tHORIZON")
	for _, s := range summaries {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%d\n",
			s.ID, s.CreatedAt.Format(time.RFC3339), s.Customers, s.Mode, s.Summary.HorizonEnd)
	}
	return w.Flush()
}
