package reports

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aeo-assessment/backend/assessment"
)

func TestStoreRoundTrip(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	report := &assessment.Report{
		URL: "https://example.com",
		Scores: assessment.Scores{
			Content:     3.5,
			Technical:   2.0,
			Authority:   4.1,
			Measurement: 1.3,
			Overall:     2.8,
		},
		MaturityLevel: "Developing",
	}

	id, err := store.Put(report)
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	assert.NoError(t, err, "generated ids are uuids")

	loaded, ok, err := store.Get(id)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, report.URL, loaded.URL)
	assert.Equal(t, report.Scores, loaded.Scores)
	assert.Equal(t, "Developing", loaded.MaturityLevel)
}

func TestStoreGetMissing(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, ok, err := store.Get(uuid.NewString())
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestStoreGetInvalidID(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	for _, id := range []string{"", "not-a-uuid", "../../etc/passwd"} {
		_, ok, err := store.Get(id)
		assert.NoError(t, err, "id %q", id)
		assert.False(t, ok, "id %q", id)
	}
}

func TestStoreDistinctIDs(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	a, err := store.Put(&assessment.Report{URL: "https://a.example.com"})
	require.NoError(t, err)
	b, err := store.Put(&assessment.Report{URL: "https://b.example.com"})
	require.NoError(t, err)

	assert.NotEqual(t, a, b)

	got, ok, err := store.Get(a)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "https://a.example.com", got.URL)
}
