package database

import (
	"time"

	"github.com/maxwell-fr/ffreader/pkg/flatfile"
)

// Processing statuses recorded in the file_records table.
const (
	FILE_STATUS_PROCESSING       = "PROCESSING"
	FILE_STATUS_DONE             = "DONE"
	FILE_STATUS_DONE_WITH_ERRORS = "DONE_WITH_ERRORS"
	FILE_STATUS_FATAL            = "FATAL"
)

// Store defines the persistence operations the ingestion service depends on.
type Store interface {
	CreateFileRecordsTable() error
	CreateFlatRecordsTable() error
	InsertFileRecord(fileName string, processedAt time.Time, status string, checksum string) (int, error)
	UpdateFileStatus(fileID int, status string, warnings any) error
	IsFileAlreadyProcessed(checksum string) (bool, error)
	CopyRecords(fileID int, records []flatfile.Record) error
}
