// Package store keeps a local archive of plan runs so a user can review
// what was generated before (and after) letting a rewrite loose.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

const runsBucket = "runs"

// RunRecord summarizes one planning run.
type RunRecord struct {
	ID           string    `json:"id"`
	StartedAt    time.Time `json:"started_at"`
	Repos        []string  `json:"repos"`
	TotalCommits int       `json:"total_commits"`
	StdDevBefore float64   `json:"std_dev_before"`
	StdDevAfter  float64   `json:"std_dev_after"`
	Artifacts    []string  `json:"artifacts"`
	Warnings     int       `json:"warnings"`
}

// Archive is a bbolt-backed run log, one JSON value per run.
type Archive struct {
	db *bolt.DB
}

// Open opens (creating if needed) the archive at path.
func Open(path string) (*Archive, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening archive %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(runsBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing archive: %w", err)
	}
	return &Archive{db: db}, nil
}

// Close releases the underlying database.
func (a *Archive) Close() error {
	return a.db.Close()
}

// Record stores a run. Keys start with the RFC 3339 start time so bbolt's
// key order is chronological for free.
func (a *Archive) Record(rec RunRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding run record: %w", err)
	}

	key := rec.StartedAt.UTC().Format(time.RFC3339Nano) + "_" + rec.ID
	return a.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(runsBucket)).Put([]byte(key), data)
	})
}

// List returns all recorded runs, oldest first.
func (a *Archive) List() ([]RunRecord, error) {
	var runs []RunRecord
	err := a.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(runsBucket)).ForEach(func(_, v []byte) error {
			var rec RunRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("decoding run record: %w", err)
			}
			runs = append(runs, rec)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return runs, nil
}
