package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildUpsertQuery(t *testing.T) {
	query, err := BuildUpsertQuery("cars",
		[]string{"month", "make", "number"},
		[]string{"month", "make"},
		2,
	)
	require.NoError(t, err)

	assert.Equal(t,
		"INSERT INTO cars (month, make, number) VALUES (?, ?, ?), (?, ?, ?) "+
			"ON DUPLICATE KEY UPDATE number = VALUES(number), updated_at = NOW()",
		query,
	)
}

func TestBuildUpsertQueryKeyColumnsNotRewritten(t *testing.T) {
	query, err := BuildUpsertQuery("coe",
		[]string{"month", "bidding_no", "vehicle_class", "quota", "premium"},
		[]string{"month", "bidding_no", "vehicle_class"},
		1,
	)
	require.NoError(t, err)

	assert.NotContains(t, query, "month = VALUES(month)")
	assert.NotContains(t, query, "bidding_no = VALUES(bidding_no)")
	assert.Contains(t, query, "quota = VALUES(quota)")
	assert.Contains(t, query, "premium = VALUES(premium)")
}

func TestBuildUpsertQueryRejectsDegenerateInput(t *testing.T) {
	_, err := BuildUpsertQuery("cars", []string{"month"}, []string{"month"}, 1)
	assert.Error(t, err, "a table with only key columns has nothing to update")

	_, err = BuildUpsertQuery("cars", []string{"month", "number"}, []string{"month"}, 0)
	assert.Error(t, err)

	_, err = BuildUpsertQuery("cars", nil, nil, 1)
	assert.Error(t, err)
}
