package persistence

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/costumeworks/suitfan/internal/ui"
	bolt "go.etcd.io/bbolt"
)

const (
	BucketController = "controller"
	KeyPresetIndex   = "presetIndex"
)

// ErrNotFound is returned when no valid record has ever been committed.
// Callers substitute the build-time default; this is never fatal.
var ErrNotFound = errors.New("no persisted value found")

type Persistence interface {
	Init() error

	SavePresetIndex(index int) error
	LoadPresetIndex() (int, error)
}

type persistence struct {
	dbPath string
}

func NewPersistence(dbPath string) Persistence {
	p := &persistence{
		dbPath: dbPath,
	}
	return p
}

func (p persistence) Init() (err error) {
	// get parent path of dbPath
	parentDir := filepath.Dir(p.dbPath)
	_, err = os.Stat(parentDir)
	if errors.Is(err, os.ErrNotExist) {
		// create directory
		ui.Info("Creating directory for db: %s", parentDir)
		err = os.MkdirAll(parentDir, 0755)
		if err != nil {
			return err
		}
	}
	return nil
}

func (p persistence) openPersistence() (db *bolt.DB, err error) {
	db, err = bolt.Open(p.dbPath, 0600, &bolt.Options{Timeout: 1 * time.Minute})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// SavePresetIndex commits the given preset index as the single-byte
// record under the fixed key. The store commits atomically; a torn
// write leaves the previously committed value intact.
func (p persistence) SavePresetIndex(index int) (err error) {
	if index < 0 || index > 255 {
		// the preset table is orders of magnitude smaller than a byte,
		// such an index means corrupted controller state
		panic(fmt.Sprintf("preset index %d does not fit inside a byte", index))
	}

	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(BucketController))
		if err != nil {
			return fmt.Errorf("create bucket: %s", err)
		}
		return b.Put([]byte(KeyPresetIndex), []byte{byte(index)})
	})
}

// LoadPresetIndex reads the last committed preset index. A missing or
// corrupt record yields ErrNotFound.
func (p persistence) LoadPresetIndex() (int, error) {
	db, err := p.openPersistence()
	if err != nil {
		return 0, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	index := 0
	err = db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketController))
		if b == nil {
			return ErrNotFound
		}
		v := b.Get([]byte(KeyPresetIndex))
		if v == nil {
			return ErrNotFound
		}

		if len(v) != 1 {
			// if we cannot read the saved data, delete it
			ui.Warning("Persisted preset index has unexpected length %d, discarding it", len(v))
			if err := b.Delete([]byte(KeyPresetIndex)); err != nil {
				ui.Error("Unable to delete corrupt data key %s: %v", KeyPresetIndex, err)
			}
			return ErrNotFound
		}

		index = int(v[0])
		return nil
	})

	return index, err
}
