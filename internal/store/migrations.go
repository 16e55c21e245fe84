package store

const createTableSQL = `
CREATE TABLE IF NOT EXISTS evaluations (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    uuid          TEXT NOT NULL UNIQUE,
    product_name  TEXT NOT NULL DEFAULT '',
    bios_version  TEXT NOT NULL DEFAULT '',
    product_type  INTEGER NOT NULL,
    category      TEXT NOT NULL DEFAULT '',
    passed        INTEGER NOT NULL DEFAULT 0,
    failed        INTEGER NOT NULL DEFAULT 0,
    evaluated_at  TEXT NOT NULL,
    stored_at     TEXT NOT NULL,
    report_json   TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_evaluations_product_name ON evaluations(product_name);
CREATE INDEX IF NOT EXISTS idx_evaluations_product_type ON evaluations(product_type);
CREATE INDEX IF NOT EXISTS idx_evaluations_evaluated_at ON evaluations(evaluated_at);
`
