package bolt

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	logger "github.com/sirupsen/logrus"
	bolt "go.etcd.io/bbolt"

	"github.com/rios0rios0/repodoctor/internal/domain/entities"
	"github.com/rios0rios0/repodoctor/internal/domain/repositories"
)

var bucketName = []byte("runs")

const (
	dbFileMode = 0o600
	dbDirMode  = 0o755
)

// BoltRunRepository persists analysis runs to a BoltDB file. The file is
// opened lazily so commands that never touch the history do not lock it.
type BoltRunRepository struct {
	path string

	once    sync.Once
	db      *bolt.DB
	openErr error
}

// NewRunRepository creates a run repository backed by the configured file.
func NewRunRepository(settings *entities.Settings) repositories.RunRepository {
	return NewRunRepositoryAt(settings.Store.Path)
}

// NewRunRepositoryAt creates a run repository backed by the file at path.
func NewRunRepositoryAt(path string) *BoltRunRepository {
	return &BoltRunRepository{path: path}
}

func (r *BoltRunRepository) open() (*bolt.DB, error) {
	r.once.Do(func() {
		if err := os.MkdirAll(filepath.Dir(r.path), dbDirMode); err != nil {
			r.openErr = fmt.Errorf("creating data directory for %s: %w", r.path, err)
			return
		}

		db, err := bolt.Open(r.path, dbFileMode, nil)
		if err != nil {
			r.openErr = fmt.Errorf("opening run store at %s: %w", r.path, err)
			return
		}

		// Ensure the bucket exists.
		if err = db.Update(func(tx *bolt.Tx) error {
			_, createErr := tx.CreateBucketIfNotExists(bucketName)
			return createErr
		}); err != nil {
			_ = db.Close()
			r.openErr = err
			return
		}

		logger.Debugf("Opened run store at %s", r.path)
		r.db = db
	})
	return r.db, r.openErr
}

// Save stores run under its ID, replacing a previous record with the same ID.
func (r *BoltRunRepository) Save(_ context.Context, run entities.AnalysisRun) error {
	db, err := r.open()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(run)
	if err != nil {
		return err
	}

	return db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(run.ID), raw)
	})
}

// List returns every stored run, newest first.
func (r *BoltRunRepository) List(_ context.Context) ([]entities.AnalysisRun, error) {
	db, err := r.open()
	if err != nil {
		return nil, err
	}

	var runs []entities.AnalysisRun
	err = db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).ForEach(func(_, raw []byte) error {
			var run entities.AnalysisRun
			if unmarshalErr := json.Unmarshal(raw, &run); unmarshalErr != nil {
				return unmarshalErr
			}
			runs = append(runs, run)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})
	return runs, nil
}

// Close releases the database file handle.
func (r *BoltRunRepository) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}
