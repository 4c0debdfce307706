package artifact

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRunSummary(t *testing.T) {
	out := runOutputFixture(t)
	out.Stats.JoinMisses = 2

	summary := NewRunSummary(out)

	assert.Equal(t, "run-1", summary.RunID)
	assert.Equal(t, "2020-03", summary.Period)
	assert.Equal(t, 3, summary.Counties)
	assert.Equal(t, 2, summary.JoinMisses)
	assert.Equal(t, "Douglas", summary.TopCounty)
	require.Len(t, summary.Records, 3)
	assert.Equal(t, 1, summary.Records[0].Rank)
}

func TestSummaryWriter_Write(t *testing.T) {
	dir := t.TempDir()

	n, err := NewSummaryWriter(dir).Write(runOutputFixture(t))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	data, err := os.ReadFile(filepath.Join(dir, SummaryName))
	require.NoError(t, err)

	var summary RunSummary
	require.NoError(t, json.Unmarshal(data, &summary))
	assert.Equal(t, 3, summary.Counties)
	assert.Equal(t, "Douglas", summary.TopCounty)
}
