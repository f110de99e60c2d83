package store

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	ds "github.com/ipfs/go-datastore"
	ktds "github.com/ipfs/go-datastore/keytransform"
	"github.com/ipfs/go-datastore/query"

	"github.com/rollkit/eigenda-client/types"
)

const journalPrefix = "dispersal"

// ErrNotFound is returned when no record exists for a request id.
var ErrNotFound = errors.New("dispersal record not found")

// Record is what the journal remembers about one dispersal request.
type Record struct {
	RequestID types.RequestID  `json:"request_id"`
	Result    types.BlobResult `json:"result"`
	QuorumID  uint32           `json:"quorum_id"`
	DataSize  int              `json:"data_size"`
	Submitted time.Time        `json:"submitted"`
	Updated   time.Time        `json:"updated"`

	// Set once the request is confirmed.
	BatchHeaderHash types.BatchHeaderHash `json:"batch_header_hash,omitempty"`
	BlobIndex       uint64                `json:"blob_index,omitempty"`
}

// Confirmed reports whether the retrieval coordinates are known.
func (r Record) Confirmed() bool {
	return r.Result == types.ResultConfirmed && r.BatchHeaderHash != ""
}

// Journal persists dispersal records keyed by request id. It is safe for
// concurrent use.
type Journal struct {
	mtx sync.Mutex
	db  ds.Batching
	now func() time.Time
}

// NewJournal stores records in db under the dispersal prefix.
func NewJournal(db ds.Batching) *Journal {
	return &Journal{
		db:  ktds.Wrap(db, ktds.PrefixTransform{Prefix: ds.NewKey(journalPrefix)}),
		now: time.Now,
	}
}

// Close closes the underlying datastore.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Put stores rec, replacing any previous record for the same request id. The
// submission time and confirmation fields of an existing record are kept when rec
// does not carry its own.
func (j *Journal) Put(ctx context.Context, rec Record) error {
	if rec.RequestID == "" {
		return fmt.Errorf("%w: request id", types.ErrMissingField)
	}
	j.mtx.Lock()
	defer j.mtx.Unlock()

	prev, err := j.get(ctx, rec.RequestID)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return err
	default:
		if rec.Submitted.IsZero() {
			rec.Submitted = prev.Submitted
		}
		if prev.Confirmed() && rec.BatchHeaderHash == "" {
			rec.Result = prev.Result
			rec.BatchHeaderHash = prev.BatchHeaderHash
			rec.BlobIndex = prev.BlobIndex
		}
	}
	return j.put(ctx, rec)
}

func (j *Journal) put(ctx context.Context, rec Record) error {
	now := j.now()
	if rec.Submitted.IsZero() {
		rec.Submitted = now
	}
	rec.Updated = now
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return j.db.Put(ctx, recordKey(rec.RequestID), data)
}

// Get returns the record for id.
func (j *Journal) Get(ctx context.Context, id types.RequestID) (Record, error) {
	j.mtx.Lock()
	defer j.mtx.Unlock()
	return j.get(ctx, id)
}

func (j *Journal) get(ctx context.Context, id types.RequestID) (Record, error) {
	data, err := j.db.Get(ctx, recordKey(id))
	if errors.Is(err, ds.ErrNotFound) {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Record{}, err
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("decoding record %s: %w", id, err)
	}
	return rec, nil
}

// UpdateStatus records the latest status of id, keeping the other fields of the
// stored record. Unknown ids get a fresh record.
func (j *Journal) UpdateStatus(ctx context.Context, id types.RequestID, status *types.BlobStatus) error {
	j.mtx.Lock()
	defer j.mtx.Unlock()

	rec, err := j.get(ctx, id)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	rec.RequestID = id
	rec.Result = status.Result()
	if status.IsConfirmed() {
		if hash, err := status.BatchHeaderHash(); err == nil {
			rec.BatchHeaderHash = hash
		}
		if index, err := status.BlobIndex(); err == nil {
			rec.BlobIndex = index
		}
	}
	return j.put(ctx, rec)
}

// List returns every record, oldest submission first.
func (j *Journal) List(ctx context.Context) ([]Record, error) {
	results, err := j.db.Query(ctx, query.Query{})
	if err != nil {
		return nil, err
	}
	defer results.Close() //nolint:errcheck

	var records []Record
	for entry := range results.Next() {
		if entry.Error != nil {
			return nil, entry.Error
		}
		var rec Record
		if err := json.Unmarshal(entry.Value, &rec); err != nil {
			return nil, fmt.Errorf("decoding record %s: %w", entry.Key, err)
		}
		records = append(records, rec)
	}
	sort.SliceStable(records, func(a, b int) bool {
		return records[a].Submitted.Before(records[b].Submitted)
	})
	return records, nil
}

// Delete removes the record for id.
func (j *Journal) Delete(ctx context.Context, id types.RequestID) error {
	return j.db.Delete(ctx, recordKey(id))
}

// request ids are base64 and may contain '/', so keys use their hex form
func recordKey(id types.RequestID) ds.Key {
	return ds.NewKey(hex.EncodeToString([]byte(id)))
}
