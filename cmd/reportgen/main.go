// Command reportgen exports one account's baselines, recommendations and
// recent audit entries to an XLSX workbook.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"adlens/adapters/excel"
	"adlens/adapters/postgres"
	"adlens/domain/core"
)

func main() {
	account := flag.String("account", "", "account id to export (required)")
	creative := flag.String("creative", "", "optional creative id to include audit entries for")
	out := flag.String("out", "report.xlsx", "output workbook path")
	limit := flag.Int("limit", 200, "max recommendations and audit entries")
	flag.Parse()

	if *account == "" {
		flag.Usage()
		os.Exit(1)
	}

	_ = godotenv.Load()
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL not set")
	}

	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	accountID := core.AccountID(*account)

	baselineRepo := postgres.NewBaselineRepository(db)
	recommendationRepo := postgres.NewRecommendationRepository(db)
	auditRepo := postgres.NewAuditRepository(db)

	report := excel.AccountReport{}
	if report.Baselines, err = baselineRepo.ListByAccount(ctx, accountID); err != nil {
		log.Fatalf("Failed to load baselines: %v", err)
	}
	if report.Recommendations, err = recommendationRepo.ListByAccount(ctx, accountID, *limit); err != nil {
		log.Fatalf("Failed to load recommendations: %v", err)
	}
	if *creative != "" {
		report.Trail, err = auditRepo.RecentByCreative(ctx, core.CreativeID(*creative), *limit)
		if err != nil {
			log.Fatalf("Failed to load audit entries: %v", err)
		}
	}

	if err := excel.NewReportExporter().Export(report, *out); err != nil {
		log.Fatalf("Failed to export report: %v", err)
	}
	log.Printf("Wrote %s: %d baselines, %d recommendations, %d audit entries",
		*out, len(report.Baselines), len(report.Recommendations), len(report.Trail))
}
