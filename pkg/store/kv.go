package store

import (
	"fmt"
	"path/filepath"

	ds "github.com/ipfs/go-datastore"
	dssync "github.com/ipfs/go-datastore/sync"
	badger3 "github.com/ipfs/go-ds-badger3"
)

// NewDefaultKVStore opens a badger backed datastore in rootDir/dbPath.
func NewDefaultKVStore(rootDir, dbPath string) (ds.Batching, error) {
	path := dbPath
	if !filepath.IsAbs(path) {
		path = filepath.Join(rootDir, dbPath)
	}
	opts := badger3.DefaultOptions
	db, err := badger3.NewDatastore(path, &opts)
	if err != nil {
		return nil, fmt.Errorf("opening journal datastore at %s: %w", path, err)
	}
	return db, nil
}

// NewDefaultInMemoryKVStore returns a thread-safe map datastore.
func NewDefaultInMemoryKVStore() ds.Batching {
	return dssync.MutexWrap(ds.NewMapDatastore())
}
