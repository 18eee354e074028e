// Package ingestion orchestrates loading one flat file and persisting the
// result: checksum-based idempotency, file status tracking and bulk record
// storage.
package ingestion

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/maxwell-fr/ffreader/internal/database"
	"github.com/maxwell-fr/ffreader/pkg/checksum"
	"github.com/maxwell-fr/ffreader/pkg/flatfile"
)

// ErrAlreadyProcessed reports that a file with the same content checksum was
// already loaded successfully.
var ErrAlreadyProcessed = errors.New("file already processed")

type Service struct {
	store     database.Store
	loader    *flatfile.Loader
	batchSize int
}

// NewService builds an ingestion service. batchSize caps how many records go
// into one COPY call; zero or negative means a single batch.
func NewService(store database.Store, loader *flatfile.Loader, batchSize int) *Service {
	return &Service{
		store:     store,
		loader:    loader,
		batchSize: batchSize,
	}
}

// Setup ensures the backing tables exist.
func (s *Service) Setup() error {
	if err := s.store.CreateFileRecordsTable(); err != nil {
		return err
	}
	return s.store.CreateFlatRecordsTable()
}

// Execute loads the flat file at filePath and persists its records. The file
// is registered as PROCESSING up front and finishes as DONE,
// DONE_WITH_ERRORS (load warnings present, stored alongside the status) or
// FATAL. Files whose checksum was already loaded successfully are skipped
// with ErrAlreadyProcessed.
func (s *Service) Execute(filePath string) (*flatfile.DataFile, error) {
	fileChecksum, err := checksum.FileChecksum(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to checksum file %s: %w", filePath, err)
	}

	processed, err := s.store.IsFileAlreadyProcessed(fileChecksum)
	if err != nil {
		return nil, fmt.Errorf("failed to check processing status for %s: %w", filePath, err)
	}
	if processed {
		log.Printf("File %s already processed (checksum %s), skipping.", filePath, fileChecksum)
		return nil, ErrAlreadyProcessed
	}

	fileID, err := s.store.InsertFileRecord(filepath.Base(filePath), time.Now(), database.FILE_STATUS_PROCESSING, fileChecksum)
	if err != nil {
		return nil, fmt.Errorf("failed to register file %s: %w", filePath, err)
	}

	df, err := s.loader.Load(filePath)
	if err != nil {
		if uerr := s.store.UpdateFileStatus(fileID, database.FILE_STATUS_FATAL, nil); uerr != nil {
			log.Printf("Failed to mark file %d as FATAL: %v", fileID, uerr)
		}
		return nil, err
	}

	if err := s.copyInBatches(fileID, df.Records()); err != nil {
		if uerr := s.store.UpdateFileStatus(fileID, database.FILE_STATUS_FATAL, nil); uerr != nil {
			log.Printf("Failed to mark file %d as FATAL: %v", fileID, uerr)
		}
		return nil, fmt.Errorf("failed to store records for %s: %w", filePath, err)
	}

	status := database.FILE_STATUS_DONE
	if len(df.Warnings()) > 0 {
		status = database.FILE_STATUS_DONE_WITH_ERRORS
	}
	if err := s.store.UpdateFileStatus(fileID, status, df.Warnings()); err != nil {
		return nil, fmt.Errorf("failed to update status for file %d: %w", fileID, err)
	}

	log.Printf("File %s loaded: %d records, %d warnings, status %s", filePath, len(df.Records()), len(df.Warnings()), status)
	return df, nil
}

func (s *Service) copyInBatches(fileID int, records []flatfile.Record) error {
	if s.batchSize <= 0 {
		return s.store.CopyRecords(fileID, records)
	}
	for start := 0; start < len(records); start += s.batchSize {
		end := start + s.batchSize
		if end > len(records) {
			end = len(records)
		}
		if err := s.store.CopyRecords(fileID, records[start:end]); err != nil {
			return err
		}
	}
	return nil
}
