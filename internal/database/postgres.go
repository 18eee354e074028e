package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxwell-fr/ffreader/pkg/checksum"
	"github.com/maxwell-fr/ffreader/pkg/flatfile"
)

func ConnectDB(connStr string) (*pgxpool.Pool, error) {
	dbpool, err := pgxpool.New(context.Background(), connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	return dbpool, nil
}

// PostgresStore implements Store on a pgx connection pool.
type PostgresStore struct {
	dbpool *pgxpool.Pool
	ctx    context.Context
}

func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{dbpool: pool, ctx: ctx}
}

func (s *PostgresStore) CreateFileRecordsTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS file_records (
		id SERIAL PRIMARY KEY,
		file_name VARCHAR(255) NOT NULL,
		processed_at TIMESTAMP NOT NULL,
		status VARCHAR(50) NOT NULL CHECK (status IN ('DONE', 'DONE_WITH_ERRORS', 'PROCESSING', 'FATAL')),
		checksum VARCHAR(64),
		warnings jsonb
	);`

	_, err := s.dbpool.Exec(s.ctx, query)
	if err != nil {
		return fmt.Errorf("error creating file_records table: %w", err)
	}

	return nil
}

func (s *PostgresStore) CreateFlatRecordsTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS flat_records (
		id BIGSERIAL PRIMARY KEY,
		file_id INTEGER NOT NULL,
		line_no INTEGER NOT NULL,
		checksum VARCHAR(64) NOT NULL,
		fields jsonb NOT NULL
	);`

	_, err := s.dbpool.Exec(s.ctx, query)
	if err != nil {
		return fmt.Errorf("error creating flat_records table: %w", err)
	}

	return nil
}

func (s *PostgresStore) InsertFileRecord(fileName string, processedAt time.Time, status string, fileChecksum string) (int, error) {
	query := `
	INSERT INTO file_records (file_name, processed_at, status, checksum)
	VALUES ($1, $2, $3, $4)
	RETURNING id;`

	var fileID int
	err := s.dbpool.QueryRow(s.ctx, query, fileName, processedAt, status, fileChecksum).Scan(&fileID)
	if err != nil {
		return 0, fmt.Errorf("error inserting file record: %w", err)
	}

	return fileID, nil
}

func (s *PostgresStore) UpdateFileStatus(fileID int, status string, warnings any) error {
	query := `
	UPDATE file_records
	SET status = $1,
		warnings = $2
	WHERE id = $3;`

	_, err := s.dbpool.Exec(s.ctx, query, status, warnings, fileID)
	if err != nil {
		return fmt.Errorf("error updating file status: %w", err)
	}

	return nil
}

func (s *PostgresStore) IsFileAlreadyProcessed(fileChecksum string) (bool, error) {
	query := `
	SELECT id
	FROM file_records
	WHERE checksum = $1 AND status = 'DONE';`

	var id int

	err := s.dbpool.QueryRow(s.ctx, query, fileChecksum).Scan(&id)

	if err != nil {
		if err == pgx.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("error finding file record by checksum: %w", err)
	}

	return true, nil
}

// CopyRecords bulk-loads one file's records with the COPY protocol. The
// fields column holds the record as a JSON object in definition order.
func (s *PostgresStore) CopyRecords(fileID int, records []flatfile.Record) error {
	columnNames := []string{"file_id", "line_no", "checksum", "fields"}

	copySource := pgx.CopyFromSlice(len(records), func(i int) ([]interface{}, error) {
		record := records[i]
		fieldsJSON, err := record.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("error marshaling record on line %d: %w", record.Line(), err)
		}

		values := make([]string, 0, record.Len())
		for _, f := range record.Fields() {
			values = append(values, f.Value)
		}

		return []interface{}{fileID, record.Line(), checksum.RecordHash(values), fieldsJSON}, nil
	})

	_, err := s.dbpool.CopyFrom(
		s.ctx,
		pgx.Identifier{"flat_records"},
		columnNames,
		copySource,
	)
	if err != nil {
		return fmt.Errorf("error copying records for file %d: %w", fileID, err)
	}

	return nil
}
