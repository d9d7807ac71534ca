package interview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/ptr"
)

func TestCountActiveQuery(t *testing.T) {
	loc := time.FixedZone("EST", -5*3600)
	start := time.Date(2024, 3, 4, 14, 0, 0, 0, loc)

	query, args, err := countActiveQuery(7, start).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT COUNT(*) FROM interviews WHERE calendar_id = $1 AND canceled = $2 AND start_time = $3",
		query)
	require.Len(t, args, 3)
	assert.Equal(t, int64(7), args[0])
	assert.Equal(t, false, args[1])
	assert.True(t, args[2].(time.Time).Equal(start))
	assert.Equal(t, time.UTC, args[2].(time.Time).Location())
}

func TestLockQuery(t *testing.T) {
	start := time.Date(2024, 3, 4, 19, 0, 0, 0, time.UTC)

	query, args, err := lockQuery(slotInstantKey(7, start)).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT pg_advisory_xact_lock(hashtextextended($1, 0))", query)
	assert.Equal(t, []interface{}{"interview:7:1709578800"}, args)

	// одно и то же время в разных поясах - один ключ
	est := start.In(time.FixedZone("EST", -5*3600))
	assert.Equal(t, slotInstantKey(7, start), slotInstantKey(7, est))

	_, args, err = lockQuery(applicationKey(42)).ToSql()
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"interview-application:42"}, args)
}

func TestListQuery(t *testing.T) {
	t.Run("active only by default", func(t *testing.T) {
		query, args, err := listQuery(domain.InterviewsFilter{}).ToSql()
		require.NoError(t, err)
		assert.Contains(t, query, "WHERE canceled = $1")
		assert.Contains(t, query, "ORDER BY start_time ASC, id ASC")
		assert.Equal(t, []interface{}{false}, args)
	})

	t.Run("all filters", func(t *testing.T) {
		from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(0, 0, 7)

		query, args, err := listQuery(domain.InterviewsFilter{
			CalendarID:      ptr.Ptr(int64(1)),
			ApplicationID:   ptr.Ptr(int64(42)),
			StartFrom:       &from,
			StartTo:         &to,
			IncludeCanceled: true,
		}).ToSql()
		require.NoError(t, err)

		assert.Contains(t, query,
			"WHERE calendar_id = $1 AND application_id = $2 AND start_time >= $3 AND start_time <= $4")
		assert.NotContains(t, query, "canceled =")
		assert.Len(t, args, 4)
	})
}
