package slot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
)

func TestGetByIDQuery(t *testing.T) {
	query, args, err := getByIDQuery(5).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "FROM slots s JOIN calendars c ON c.id = s.calendar_id WHERE s.id = $1")
	assert.Contains(t, query, "c.timezone")
	assert.Equal(t, []interface{}{int64(5)}, args)
}

func TestSlotDest_MatchesColumns(t *testing.T) {
	var s domain.Slot
	assert.Len(t, slotDest(&s), len(slotColumns))
}
