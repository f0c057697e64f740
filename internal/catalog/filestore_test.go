package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "data.json"))
}

func TestAppendRejectsDuplicate(t *testing.T) {
	s := newTestStore(t)

	added, err := s.Append("Zomin", "2-DMTT")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = s.Append("Zomin", "2-DMTT")
	require.NoError(t, err)
	assert.False(t, added)

	assert.Equal(t, []string{"2-DMTT"}, s.Jobs("Zomin"))
}

func TestClearReportsRemovedCount(t *testing.T) {
	s := newTestStore(t)

	for _, title := range []string{"2-DMTT", "5-DMTT", "bosh o'qituvchi"} {
		added, err := s.Append("Paxtakor", title)
		require.NoError(t, err)
		require.True(t, added)
	}

	removed, err := s.Clear("Paxtakor")
	require.NoError(t, err)
	assert.Equal(t, 3, removed)
	assert.NotContains(t, s.DistrictsWithOpenings(), "Paxtakor")

	removed, err = s.Clear("Paxtakor")
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestClearAbsentDistrict(t *testing.T) {
	s := newTestStore(t)
	removed, err := s.Clear("Forish")
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestCorruptFileLoadsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s := NewFileStore(path)
	assert.Empty(t, s.Reload())
	assert.Empty(t, s.DistrictsWithOpenings())

	// Store stays usable after starting from a corrupt file
	added, err := s.Append("Zomin", "2-DMTT")
	require.NoError(t, err)
	assert.True(t, added)
}

func TestReloadPicksUpExternalEdits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	s := NewFileStore(path)

	_, err := s.Append("Zomin", "2-DMTT")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte(`{"Forish": ["7-DMTT"]}`), 0o644))

	c := s.Reload()
	assert.Equal(t, []string{"7-DMTT"}, c["Forish"])
	assert.Empty(t, c["Zomin"])
}

func TestSortedJobsAlphabetizesForDisplayOnly(t *testing.T) {
	s := newTestStore(t)
	for _, title := range []string{"B", "A"} {
		_, err := s.Append("Zomin", title)
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"B", "A"}, s.Jobs("Zomin"))
	assert.Equal(t, []string{"A", "B"}, s.Reload().SortedJobs("Zomin"))
}

func TestDistrictsWithOpeningsCanonicalOrder(t *testing.T) {
	s := newTestStore(t)
	for _, district := range []string{"Zomin", "Arnasoy tumani", "Paxtakor"} {
		_, err := s.Append(district, "1-DMTT")
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"Arnasoy tumani", "Zomin", "Paxtakor"}, s.DistrictsWithOpenings())
}

func TestEmptyDistrictExcludedFromSelection(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Append("Zomin", "2-DMTT")
	require.NoError(t, err)
	_, err = s.Clear("Zomin")
	require.NoError(t, err)

	assert.Empty(t, s.DistrictsWithOpenings())

	// An emptied district is indistinguishable from an absent one
	other := NewFileStore(filepath.Join(t.TempDir(), "data.json"))
	assert.Equal(t, other.DistrictsWithOpenings(), s.DistrictsWithOpenings())
}
