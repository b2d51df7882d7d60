package integration

import (
	"database/sql"
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"homestay-backend/internal/config"

	_ "github.com/lib/pq"
)

var configPath string

func init() {
	flag.StringVar(&configPath, "config", "../../config/config.test.yaml", "path to config file")
}

const schema = `
CREATE TABLE IF NOT EXISTS properties (
	id               BIGSERIAL PRIMARY KEY,
	owner_id         BIGINT NOT NULL,
	daily_rate_cents BIGINT NOT NULL,
	status           TEXT NOT NULL DEFAULT 'LISTED'
);

CREATE TABLE IF NOT EXISTS bookings (
	id                BIGSERIAL PRIMARY KEY,
	property_id       BIGINT NOT NULL REFERENCES properties(id),
	renter_id         BIGINT NOT NULL,
	host_id           BIGINT NOT NULL,
	start_at          TIMESTAMPTZ NOT NULL,
	end_at            TIMESTAMPTZ NOT NULL,
	guest_count       INT NOT NULL,
	daily_rate_cents  BIGINT NOT NULL,
	total_price_cents BIGINT NOT NULL,
	status            TEXT NOT NULL,
	message           TEXT,
	reject_reason     TEXT,
	cancel_reason     TEXT,
	created_at        TIMESTAMPTZ NOT NULL,
	decided_at        TIMESTAMPTZ,
	checked_in_at     TIMESTAMPTZ,
	checked_out_at    TIMESTAMPTZ,
	canceled_at       TIMESTAMPTZ,
	CHECK (start_at < end_at)
);

CREATE INDEX IF NOT EXISTS idx_bookings_property_active
	ON bookings (property_id) WHERE status IN ('PENDING', 'APPROVED', 'CHECKED_IN');
`

// prepareDB connects to the test database and installs the schema. Tests are
// skipped when no database is reachable so the unit tiers stay runnable
// without infrastructure.
func prepareDB(t *testing.T) *sql.DB {
	if !flag.Parsed() {
		flag.Parse()
	}

	finalPath := configPath
	if _, err := os.Stat(finalPath); os.IsNotExist(err) {
		altPath := filepath.Join("..", "..", configPath)
		if _, err := os.Stat(altPath); err == nil {
			finalPath = altPath
		} else {
			t.Skipf("no test config at %s, skipping integration tests", configPath)
		}
	}

	cfg, err := config.Load(finalPath)
	if err != nil {
		t.Fatalf("failed to load config from %s: %v", finalPath, err)
	}

	var db *sql.DB
	for i := 0; i < 5; i++ {
		db, err = sql.Open("postgres", cfg.GetDatabaseConnectionString())
		if err == nil {
			if err = db.Ping(); err == nil {
				break
			}
		}
		time.Sleep(time.Second)
	}
	if err != nil {
		t.Skipf("test database unreachable, skipping: %v", err)
	}

	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("failed to install schema: %v", err)
	}
	if _, err := db.Exec(`TRUNCATE bookings, properties RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("failed to reset tables: %v", err)
	}
	return db
}

func seedProperty(t *testing.T, db *sql.DB, ownerID, dailyRateCents int64) int64 {
	var id int64
	err := db.QueryRow(
		`INSERT INTO properties (owner_id, daily_rate_cents, status) VALUES ($1, $2, 'LISTED') RETURNING id`,
		ownerID, dailyRateCents,
	).Scan(&id)
	if err != nil {
		t.Fatalf("failed to seed property: %v", err)
	}
	return id
}
