package persistence

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	bolt "go.etcd.io/bbolt"
)

func testDbPath(t *testing.T) string {
	return filepath.Join(t.TempDir(), "suitfan.db")
}

func TestPersistence_RoundTrip(t *testing.T) {
	// GIVEN
	dbPath := testDbPath(t)
	p := NewPersistence(dbPath)
	err := p.SavePresetIndex(7)
	assert.NoError(t, err)

	// WHEN a fresh instance simulates a reboot
	rebooted := NewPersistence(dbPath)
	index, err := rebooted.LoadPresetIndex()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 7, index)
}

func TestPersistence_LoadFromEmptyStore(t *testing.T) {
	// GIVEN
	p := NewPersistence(testDbPath(t))

	// WHEN
	_, err := p.LoadPresetIndex()

	// THEN
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPersistence_SaveOverwrites(t *testing.T) {
	// GIVEN
	p := NewPersistence(testDbPath(t))
	assert.NoError(t, p.SavePresetIndex(3))

	// WHEN
	assert.NoError(t, p.SavePresetIndex(10))
	index, err := p.LoadPresetIndex()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 10, index)
}

func TestPersistence_CorruptRecordIsDiscarded(t *testing.T) {
	// GIVEN a record of the wrong size
	dbPath := testDbPath(t)
	db, err := bolt.Open(dbPath, 0600, nil)
	assert.NoError(t, err)
	err = db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(BucketController))
		if err != nil {
			return err
		}
		return b.Put([]byte(KeyPresetIndex), []byte{1, 2, 3})
	})
	assert.NoError(t, err)
	assert.NoError(t, db.Close())

	p := NewPersistence(dbPath)

	// WHEN
	_, err = p.LoadPresetIndex()

	// THEN
	assert.ErrorIs(t, err, ErrNotFound)

	// AND the corrupt record was deleted
	_, err = p.LoadPresetIndex()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPersistence_IndexMustFitByte(t *testing.T) {
	// GIVEN
	p := NewPersistence(testDbPath(t))

	// THEN
	assert.Panics(t, func() {
		_ = p.SavePresetIndex(256)
	})
	assert.Panics(t, func() {
		_ = p.SavePresetIndex(-1)
	})
}
