package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/maxwell-fr/ffreader/internal/database"
	"github.com/maxwell-fr/ffreader/pkg/flatfile"
)

// MockStore is a mock implementation of the database.Store interface.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) CreateFileRecordsTable() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockStore) CreateFlatRecordsTable() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockStore) InsertFileRecord(fileName string, processedAt time.Time, status string, checksum string) (int, error) {
	args := m.Called(fileName, processedAt, status, checksum)
	return args.Int(0), args.Error(1)
}

func (m *MockStore) UpdateFileStatus(fileID int, status string, warnings any) error {
	args := m.Called(fileID, status, warnings)
	return args.Error(0)
}

func (m *MockStore) IsFileAlreadyProcessed(checksum string) (bool, error) {
	args := m.Called(checksum)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) CopyRecords(fileID int, records []flatfile.Record) error {
	args := m.Called(fileID, records)
	return args.Error(0)
}

func testLoader(t *testing.T) *flatfile.Loader {
	t.Helper()
	id, err := flatfile.NewFieldDef("id", 0, 4, nil)
	assert.NoError(t, err)
	amount, err := flatfile.NewFieldDef("amount", 4, 6, nil)
	assert.NoError(t, err)

	loader, err := flatfile.NewLoader([]flatfile.FieldDef{id, amount}, flatfile.Options{})
	assert.NoError(t, err)
	return loader
}

func writeInputFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.txt")
	assert.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestServiceSetup(t *testing.T) {
	store := new(MockStore)
	service := NewService(store, testLoader(t), 0)

	store.On("CreateFileRecordsTable").Return(nil).Once()
	store.On("CreateFlatRecordsTable").Return(nil).Once()

	assert.NoError(t, service.Setup())
	store.AssertExpectations(t)
}

func TestServiceExecute(t *testing.T) {
	t.Run("CleanFileEndsDone", func(t *testing.T) {
		path := writeInputFile(t, "000112345.6\n")
		store := new(MockStore)
		service := NewService(store, testLoader(t), 0)

		store.On("IsFileAlreadyProcessed", mock.Anything).Return(false, nil).Once()
		store.On("InsertFileRecord", "input.txt", mock.Anything, database.FILE_STATUS_PROCESSING, mock.Anything).Return(7, nil).Once()
		store.On("CopyRecords", 7, mock.Anything).Return(nil).Once()
		store.On("UpdateFileStatus", 7, database.FILE_STATUS_DONE, mock.Anything).Return(nil).Once()

		df, err := service.Execute(path)
		assert.NoError(t, err)
		assert.Len(t, df.Records(), 1)
		store.AssertExpectations(t)
	})

	t.Run("WarningsEndDoneWithErrors", func(t *testing.T) {
		path := writeInputFile(t, "000112345.6\n0002\n")
		store := new(MockStore)
		service := NewService(store, testLoader(t), 0)

		store.On("IsFileAlreadyProcessed", mock.Anything).Return(false, nil).Once()
		store.On("InsertFileRecord", "input.txt", mock.Anything, database.FILE_STATUS_PROCESSING, mock.Anything).Return(8, nil).Once()
		store.On("CopyRecords", 8, mock.Anything).Return(nil).Once()
		store.On("UpdateFileStatus", 8, database.FILE_STATUS_DONE_WITH_ERRORS, mock.Anything).Return(nil).Once()

		df, err := service.Execute(path)
		assert.NoError(t, err)
		assert.Len(t, df.Records(), 2)
		assert.Len(t, df.Warnings(), 1)
		store.AssertExpectations(t)
	})

	t.Run("AlreadyProcessedSkips", func(t *testing.T) {
		path := writeInputFile(t, "000112345.6\n")
		store := new(MockStore)
		service := NewService(store, testLoader(t), 0)

		store.On("IsFileAlreadyProcessed", mock.Anything).Return(true, nil).Once()

		df, err := service.Execute(path)
		assert.Nil(t, df)
		assert.ErrorIs(t, err, ErrAlreadyProcessed)
		store.AssertExpectations(t)
		store.AssertNotCalled(t, "InsertFileRecord", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("FatalLoadMarksFatal", func(t *testing.T) {
		path := writeInputFile(t, "0001\x002345\n")
		store := new(MockStore)
		service := NewService(store, testLoader(t), 0)

		store.On("IsFileAlreadyProcessed", mock.Anything).Return(false, nil).Once()
		store.On("InsertFileRecord", "input.txt", mock.Anything, database.FILE_STATUS_PROCESSING, mock.Anything).Return(9, nil).Once()
		store.On("UpdateFileStatus", 9, database.FILE_STATUS_FATAL, mock.Anything).Return(nil).Once()

		df, err := service.Execute(path)
		assert.Nil(t, df)
		assert.ErrorIs(t, err, flatfile.ErrNotText)
		store.AssertExpectations(t)
		store.AssertNotCalled(t, "CopyRecords", mock.Anything, mock.Anything)
	})

	t.Run("CopyFailureMarksFatal", func(t *testing.T) {
		path := writeInputFile(t, "000112345.6\n")
		store := new(MockStore)
		service := NewService(store, testLoader(t), 0)

		store.On("IsFileAlreadyProcessed", mock.Anything).Return(false, nil).Once()
		store.On("InsertFileRecord", "input.txt", mock.Anything, database.FILE_STATUS_PROCESSING, mock.Anything).Return(10, nil).Once()
		store.On("CopyRecords", 10, mock.Anything).Return(fmt.Errorf("copy failed")).Once()
		store.On("UpdateFileStatus", 10, database.FILE_STATUS_FATAL, mock.Anything).Return(nil).Once()

		_, err := service.Execute(path)
		assert.ErrorContains(t, err, "copy failed")
		store.AssertExpectations(t)
	})

	t.Run("MissingFile", func(t *testing.T) {
		store := new(MockStore)
		service := NewService(store, testLoader(t), 0)

		_, err := service.Execute(filepath.Join(t.TempDir(), "missing.txt"))
		assert.Error(t, err)
		store.AssertNotCalled(t, "IsFileAlreadyProcessed", mock.Anything)
	})
}

func TestServiceCopyBatching(t *testing.T) {
	var content string
	for i := 0; i < 5; i++ {
		content += fmt.Sprintf("%04d123456\n", i)
	}
	path := writeInputFile(t, content)

	store := new(MockStore)
	service := NewService(store, testLoader(t), 2)

	store.On("IsFileAlreadyProcessed", mock.Anything).Return(false, nil).Once()
	store.On("InsertFileRecord", "input.txt", mock.Anything, database.FILE_STATUS_PROCESSING, mock.Anything).Return(11, nil).Once()
	store.On("CopyRecords", 11, mock.MatchedBy(func(records []flatfile.Record) bool {
		return len(records) == 2
	})).Return(nil).Twice()
	store.On("CopyRecords", 11, mock.MatchedBy(func(records []flatfile.Record) bool {
		return len(records) == 1
	})).Return(nil).Once()
	store.On("UpdateFileStatus", 11, database.FILE_STATUS_DONE, mock.Anything).Return(nil).Once()

	df, err := service.Execute(path)
	assert.NoError(t, err)
	assert.Len(t, df.Records(), 5)
	store.AssertExpectations(t)
}
