package postgres

import (
	"context"
	"fmt"
)

// schema esquema del ledger. Idempotente: se puede aplicar en cada arranque.
// La tabla users pertenece al componente de identidad; aquí solo se garantiza la forma mínima
// que el ledger referencia (id, full_name, email).
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id         UUID PRIMARY KEY,
    full_name  TEXT NOT NULL DEFAULT '',
    email      TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS categories (
    id         UUID PRIMARY KEY,
    name       TEXT NOT NULL UNIQUE CHECK (btrim(name) <> ''),
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

-- current_quantity puede quedar negativa: las salidas importadas exentas no verifican stock.
CREATE TABLE IF NOT EXISTS items (
    id               UUID PRIMARY KEY,
    name             TEXT NOT NULL CHECK (btrim(name) <> ''),
    variant_label    TEXT,
    description      TEXT,
    unit_type        TEXT NOT NULL DEFAULT 'pcs',
    category_id      UUID REFERENCES categories(id),
    current_quantity INTEGER NOT NULL DEFAULT 0,
    created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE UNIQUE INDEX IF NOT EXISTS items_identity_uq ON items (
    name,
    COALESCE(variant_label, ''),
    COALESCE(category_id, '00000000-0000-0000-0000-000000000000'::uuid)
);
CREATE INDEX IF NOT EXISTS items_category_idx ON items (category_id);

CREATE TABLE IF NOT EXISTS stock_movements (
    id         UUID PRIMARY KEY,
    item_id    UUID NOT NULL REFERENCES items(id),
    type       TEXT NOT NULL CHECK (type IN ('IN', 'OUT')),
    quantity   INTEGER NOT NULL CHECK (quantity >= 1),
    reason     TEXT,
    source     TEXT NOT NULL DEFAULT 'MANUAL' CHECK (source IN ('MANUAL', 'IMPORT')),
    created_by UUID REFERENCES users(id),
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS stock_movements_item_created_idx ON stock_movements (item_id, created_at DESC);
`

// EnsureSchema crea tablas e índices si no existen.
func EnsureSchema(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, schema); err != nil {
		return fmt.Errorf("crear esquema: %w", err)
	}
	return nil
}
