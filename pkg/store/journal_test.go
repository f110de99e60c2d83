package store

import (
	"context"
	"sync"
	"testing"
	"time"

	ds "github.com/ipfs/go-datastore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rollkit/eigenda-client/types"
)

func fixedClock(start time.Time) func() time.Time {
	t := start
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func TestJournalPutGet(t *testing.T) {
	ctx := context.Background()
	j := NewJournal(NewDefaultInMemoryKVStore())
	j.now = fixedClock(time.Unix(1000, 0))

	id := types.RequestID("MTdmMmE2YmM0ZTk3ZjI0ZjQ0NjNmMGQ2MzRmMjFjZjQ=/+")
	require.NoError(t, j.Put(ctx, Record{RequestID: id, Result: types.ResultProcessing, QuorumID: 1, DataSize: 11}))

	rec, err := j.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, rec.RequestID)
	assert.Equal(t, types.ResultProcessing, rec.Result)
	assert.Equal(t, uint32(1), rec.QuorumID)
	assert.Equal(t, 11, rec.DataSize)
	assert.False(t, rec.Submitted.IsZero())
	assert.False(t, rec.Confirmed())

	_, err = j.Get(ctx, "unknown")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, j.Put(ctx, Record{}), types.ErrMissingField)
}

func TestJournalUpdateStatus(t *testing.T) {
	ctx := context.Background()
	j := NewJournal(NewDefaultInMemoryKVStore())
	id := types.GetRandomRequestID()

	require.NoError(t, j.Put(ctx, Record{RequestID: id, Result: types.ResultProcessing, DataSize: 3}))
	first, err := j.Get(ctx, id)
	require.NoError(t, err)

	info := types.GetRandomBlobInfo()
	require.NoError(t, j.UpdateStatus(ctx, id, types.NewBlobStatus(types.ResultConfirmed, &info)))

	rec, err := j.Get(ctx, id)
	require.NoError(t, err)
	assert.True(t, rec.Confirmed())
	assert.Equal(t, info.BlobVerificationProof().BatchMetadata().BatchHeaderHash(), rec.BatchHeaderHash)
	assert.Equal(t, info.BlobVerificationProof().BlobIndex(), rec.BlobIndex)
	assert.Equal(t, 3, rec.DataSize)
	assert.True(t, first.Submitted.Equal(rec.Submitted))

	other := types.GetRandomRequestID()
	require.NoError(t, j.UpdateStatus(ctx, other, types.NewBlobStatus(types.ResultFailed, nil)))
	rec, err = j.Get(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, types.ResultFailed, rec.Result)
}

func TestJournalPutKeepsConfirmation(t *testing.T) {
	ctx := context.Background()
	j := NewJournal(NewDefaultInMemoryKVStore())
	id := types.GetRandomRequestID()
	info := types.GetRandomBlobInfo()

	// status arrives before the dispersal record is written
	require.NoError(t, j.UpdateStatus(ctx, id, types.NewBlobStatus(types.ResultConfirmed, &info)))
	require.NoError(t, j.Put(ctx, Record{RequestID: id, Result: types.ResultProcessing, QuorumID: 2, DataSize: 5}))

	rec, err := j.Get(ctx, id)
	require.NoError(t, err)
	assert.True(t, rec.Confirmed())
	assert.Equal(t, uint32(2), rec.QuorumID)
	assert.Equal(t, 5, rec.DataSize)
}

func TestJournalConcurrentPutAndUpdate(t *testing.T) {
	ctx := context.Background()
	j := NewJournal(NewDefaultInMemoryKVStore())
	info := types.GetRandomBlobInfo()
	confirmed := types.NewBlobStatus(types.ResultConfirmed, &info)

	ids := make([]types.RequestID, 50)
	for i := range ids {
		ids[i] = types.GetRandomRequestID()
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		id := id
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.NoError(t, j.Put(ctx, Record{RequestID: id, Result: types.ResultProcessing, QuorumID: 1, DataSize: 11}))
		}()
		go func() {
			defer wg.Done()
			assert.NoError(t, j.UpdateStatus(ctx, id, confirmed))
		}()
	}
	wg.Wait()

	for _, id := range ids {
		rec, err := j.Get(ctx, id)
		require.NoError(t, err)
		assert.True(t, rec.Confirmed(), "record %s lost its confirmation", id)
		assert.Equal(t, uint32(1), rec.QuorumID, "record %s lost its quorum", id)
		assert.Equal(t, 11, rec.DataSize, "record %s lost its size", id)
	}
}

func TestJournalListAndDelete(t *testing.T) {
	ctx := context.Background()
	j := NewJournal(NewDefaultInMemoryKVStore())
	j.now = fixedClock(time.Unix(1000, 0))

	ids := []types.RequestID{"c", "a", "b"}
	for _, id := range ids {
		require.NoError(t, j.Put(ctx, Record{RequestID: id, Result: types.ResultProcessing}))
	}

	records, err := j.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	for i, id := range ids {
		assert.Equal(t, id, records[i].RequestID)
	}

	require.NoError(t, j.Delete(ctx, "a"))
	records, err = j.List(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestJournalUsesPrefix(t *testing.T) {
	ctx := context.Background()
	base := NewDefaultInMemoryKVStore()
	require.NoError(t, base.Put(ctx, ds.NewKey("unrelated"), []byte("x")))

	j := NewJournal(base)
	require.NoError(t, j.Put(ctx, Record{RequestID: "id", Result: types.ResultProcessing}))

	records, err := j.List(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestJournalPersistsOnDisk(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	db, err := NewDefaultKVStore(root, "data")
	require.NoError(t, err)
	j := NewJournal(db)
	require.NoError(t, j.Put(ctx, Record{RequestID: "persisted", Result: types.ResultProcessing}))
	require.NoError(t, j.Close())

	db, err = NewDefaultKVStore(root, "data")
	require.NoError(t, err)
	j = NewJournal(db)
	defer j.Close() //nolint:errcheck

	rec, err := j.Get(ctx, "persisted")
	require.NoError(t, err)
	assert.Equal(t, types.ResultProcessing, rec.Result)
}
