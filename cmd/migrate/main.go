package main

import (
	"log"

	"github.com/flexprice/paystack-bridge/internal/config"
	"github.com/flexprice/paystack-bridge/internal/logger"
	"github.com/flexprice/paystack-bridge/internal/postgres"
)

// schema creates the bridge's own table plus local stand-ins for the CRM
// tables it reads, for development databases. The partial unique index on
// reference is load bearing: it is what makes settlement of a gateway
// reference a once-only operation.
const schema = `
CREATE TABLE IF NOT EXISTS transactions (
	id             TEXT PRIMARY KEY,
	invoice_id     TEXT NOT NULL,
	client_id      TEXT NOT NULL,
	reference      TEXT,
	amount         NUMERIC(20, 9) NOT NULL DEFAULT 0,
	currency       TEXT NOT NULL DEFAULT '',
	status         TEXT NOT NULL,
	gateway_status TEXT NOT NULL DEFAULT '',
	error_message  TEXT,
	metadata       JSONB,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_transactions_reference
	ON transactions (reference) WHERE reference IS NOT NULL;

CREATE INDEX IF NOT EXISTS idx_transactions_invoice_status
	ON transactions (invoice_id, status);

CREATE TABLE IF NOT EXISTS invoices (
	id          TEXT PRIMARY KEY,
	client_id   TEXT NOT NULL,
	serie       TEXT NOT NULL DEFAULT '',
	nr          INTEGER NOT NULL DEFAULT 0,
	buyer_email TEXT NOT NULL,
	currency    TEXT NOT NULL,
	total       NUMERIC(20, 9) NOT NULL DEFAULT 0,
	tax         NUMERIC(20, 9) NOT NULL DEFAULT 0,
	status      TEXT NOT NULL DEFAULT 'unpaid',
	hash        TEXT NOT NULL DEFAULT '',
	paid_at     TIMESTAMPTZ,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS client_balance (
	id          TEXT PRIMARY KEY,
	client_id   TEXT NOT NULL,
	amount      NUMERIC(20, 9) NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	metadata    JSONB,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_client_balance_client
	ON client_balance (client_id);
`

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}

	db, err := postgres.NewClient(cfg, logr)
	if err != nil {
		logr.Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	if _, err := db.Exec(schema); err != nil {
		logr.Fatalw("migration failed", "error", err)
	}

	logr.Info("migration complete")
}
