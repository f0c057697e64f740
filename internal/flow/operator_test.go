package flow

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sardorasatov93-code/Vakansiya-bot/internal/catalog"
)

const operatorChat = int64(999)

func newOperatorFlow(t *testing.T) *OperatorFlow {
	t.Helper()
	store := catalog.NewFileStore(filepath.Join(t.TempDir(), "data.json"))
	return NewOperatorFlow(store)
}

func TestAddJobRequiresStagedDistrict(t *testing.T) {
	o := newOperatorFlow(t)

	_, _, err := o.AddJob(operatorChat, "2-DMTT")
	assert.ErrorIs(t, err, ErrNoDraft)

	o.StageAdd(operatorChat, "Zomin")
	district, added, err := o.AddJob(operatorChat, "2-DMTT")
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, "Zomin", district)

	// Duplicate warns but the draft stays open for more titles
	_, added, err = o.AddJob(operatorChat, "2-DMTT")
	require.NoError(t, err)
	assert.False(t, added)
	assert.True(t, o.InProgress(operatorChat))

	_, added, err = o.AddJob(operatorChat, "5-DMTT")
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, []string{"2-DMTT", "5-DMTT"}, o.Store().Jobs("Zomin"))
}

func TestClearNeedsTwoStepConfirmation(t *testing.T) {
	o := newOperatorFlow(t)
	o.StageAdd(operatorChat, "Zomin")
	for _, title := range []string{"2-DMTT", "5-DMTT"} {
		_, _, err := o.AddJob(operatorChat, title)
		require.NoError(t, err)
	}
	o.Reset(operatorChat)

	// Staging alone does not mutate the catalog
	staged := o.StageClear(operatorChat, "Zomin")
	assert.Equal(t, 2, staged)
	assert.Equal(t, []string{"2-DMTT", "5-DMTT"}, o.Store().Jobs("Zomin"))

	// Confirming a different district is rejected
	_, err := o.ConfirmClear(operatorChat, "Paxtakor")
	assert.ErrorIs(t, err, ErrNoDraft)

	// Draft was consumed by the mismatched confirm; stage again
	o.StageClear(operatorChat, "Zomin")
	removed, err := o.ConfirmClear(operatorChat, "Zomin")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.Empty(t, o.Store().Jobs("Zomin"))
	assert.False(t, o.InProgress(operatorChat))
}

func TestConfirmWithoutStagingRejected(t *testing.T) {
	o := newOperatorFlow(t)
	_, err := o.ConfirmClear(operatorChat, "Zomin")
	assert.ErrorIs(t, err, ErrNoDraft)
}

func TestAddJobIgnoresBlankTitle(t *testing.T) {
	o := newOperatorFlow(t)
	o.StageAdd(operatorChat, "Zomin")

	_, added, err := o.AddJob(operatorChat, "   ")
	require.NoError(t, err)
	assert.False(t, added)
	assert.Empty(t, o.Store().Jobs("Zomin"))
}

func TestListingReloadsFromDisk(t *testing.T) {
	o := newOperatorFlow(t)
	o.StageAdd(operatorChat, "Zomin")
	_, _, err := o.AddJob(operatorChat, "B")
	require.NoError(t, err)
	_, _, err = o.AddJob(operatorChat, "A")
	require.NoError(t, err)

	c, order := o.Listing()
	assert.Equal(t, catalog.CanonicalDistricts, order)
	assert.Equal(t, []string{"A", "B"}, c.SortedJobs("Zomin"))
}
