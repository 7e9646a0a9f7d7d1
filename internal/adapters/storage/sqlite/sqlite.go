package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"tickerboard/internal/application/ports"
	"tickerboard/internal/domain/models"
)

// Adapter implements the StoragePort interface on an embedded SQLite
// database, so the system runs with no external services. Same document
// shape as the PostgreSQL adapter.
type Adapter struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database and runs migrations.
func New(dbPath string) (*Adapter, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for concurrent reads while the seeder writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	a := &Adapter{db: db}
	if err := a.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return a, nil
}

func (a *Adapter) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS price_documents (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			collection TEXT NOT NULL,
			file_name  TEXT NOT NULL,
			date       TEXT NOT NULL,
			open       TEXT NOT NULL,
			high       TEXT NOT NULL,
			low        TEXT NOT NULL,
			close      TEXT NOT NULL,
			adj_close  TEXT NOT NULL,
			volume     TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_price_docs_lookup
			ON price_documents(collection, file_name, date)`,
		`CREATE TABLE IF NOT EXISTS headline_documents (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			headlines   TEXT NOT NULL,
			time        TEXT NOT NULL,
			description TEXT NOT NULL,
			file_name   TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_headline_docs_source
			ON headline_documents(file_name)`,
	}
	for _, stmt := range stmts {
		if _, err := a.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// FindPrices returns raw price documents matching the query.
func (a *Adapter) FindPrices(ctx context.Context, collection string, q ports.PriceQuery) ([]models.RawPriceDocument, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT file_name, date, open, high, low, close, adj_close, volume
		FROM price_documents WHERE collection = ?`)

	args := []any{collection}
	if q.Symbol != "" {
		sb.WriteString(" AND file_name = ?")
		args = append(args, q.Symbol)
	}
	if q.StartDate != "" {
		sb.WriteString(" AND date >= ?")
		args = append(args, q.StartDate)
	}
	if q.EndDate != "" {
		sb.WriteString(" AND date <= ?")
		args = append(args, q.EndDate)
	}

	if q.SortDesc {
		sb.WriteString(" ORDER BY date DESC, file_name ASC")
	} else {
		sb.WriteString(" ORDER BY date ASC, file_name ASC")
	}
	if q.Limit > 0 {
		sb.WriteString(" LIMIT ?")
		args = append(args, q.Limit)
	}

	rows, err := a.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []models.RawPriceDocument
	for rows.Next() {
		var doc models.RawPriceDocument
		err := rows.Scan(&doc.FileName, &doc.Date, &doc.Open, &doc.High,
			&doc.Low, &doc.Close, &doc.AdjClose, &doc.Volume)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

// FindHeadlines returns raw headline documents matching the query.
func (a *Adapter) FindHeadlines(ctx context.Context, q ports.HeadlineQuery) ([]models.RawHeadlineDocument, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT headlines, time, description, file_name FROM headline_documents`)

	var args []any
	if q.Source != "" {
		sb.WriteString(" WHERE file_name = ?")
		args = append(args, q.Source)
	}
	sb.WriteString(" ORDER BY id ASC")
	if q.Limit > 0 {
		sb.WriteString(" LIMIT ?")
		args = append(args, q.Limit)
	}

	rows, err := a.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []models.RawHeadlineDocument
	for rows.Next() {
		var doc models.RawHeadlineDocument
		if err := rows.Scan(&doc.Headlines, &doc.Time, &doc.Description, &doc.FileName); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

// ReplacePrices clears a price collection and bulk-inserts docs.
func (a *Adapter) ReplacePrices(ctx context.Context, collection string, docs []models.RawPriceDocument) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM price_documents WHERE collection = ?`, collection); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO price_documents
		(collection, file_name, date, open, high, low, close, adj_close, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, doc := range docs {
		_, err := stmt.ExecContext(ctx, collection, doc.FileName, doc.Date, doc.Open,
			doc.High, doc.Low, doc.Close, doc.AdjClose, doc.Volume)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ReplaceHeadlines clears the headline collection and bulk-inserts docs.
func (a *Adapter) ReplaceHeadlines(ctx context.Context, docs []models.RawHeadlineDocument) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM headline_documents`); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO headline_documents
		(headlines, time, description, file_name) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, doc := range docs {
		if _, err := stmt.ExecContext(ctx, doc.Headlines, doc.Time, doc.Description, doc.FileName); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Ping verifies the database connection.
func (a *Adapter) Ping(ctx context.Context) error {
	return a.db.PingContext(ctx)
}

// Close closes the storage connection
func (a *Adapter) Close() error {
	return a.db.Close()
}
