package callbacks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitPair(t *testing.T) {
	district, job, err := splitPair("Zomin|2-DMTT", "|")
	require.NoError(t, err)
	assert.Equal(t, "Zomin", district)
	assert.Equal(t, "2-DMTT", job)
}

func TestSplitPairSeparatorInsideSecondPart(t *testing.T) {
	district, job, err := splitPair(`Zomin|65-son "Olmos" | filial`, "|")
	require.NoError(t, err)
	assert.Equal(t, "Zomin", district)
	assert.Equal(t, `65-son "Olmos" | filial`, job)
}

func TestSplitPairRejectsMalformed(t *testing.T) {
	_, _, err := splitPair("", "|")
	assert.Error(t, err)

	_, _, err = splitPair("Zomin", "|")
	assert.Error(t, err)
}
