// Command auditview is a read-only inspector for audit trails, baselines and
// recommendations. It talks straight to the database; nothing here can
// mutate engine state.
package main

import (
	"log"
	"net/http"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"adlens/adapters/postgres"
)

func main() {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is required")
	}
	db, err := sqlx.Connect("postgres", dbURL)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	port := os.Getenv("AUDITVIEW_PORT")
	if port == "" {
		port = "8090"
	}

	app := newApp(
		postgres.NewAuditRepository(db),
		postgres.NewBaselineRepository(db),
		postgres.NewRecommendationRepository(db),
	)

	log.Printf("auditview listening on http://localhost:%s", port)
	log.Fatal(http.ListenAndServe(":"+port, app.router))
}
