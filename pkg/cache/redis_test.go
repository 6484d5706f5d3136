package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stats struct {
	TotalBookings int     `json:"totalBookings"`
	TotalRevenue  float64 `json:"totalRevenue"`
}

func TestCache_Hit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer mock.ClearExpect()
	mock.ExpectGet("analytics:agent:a1:stats").SetVal(`{"totalBookings":3,"totalRevenue":450.5}`)

	var got stats
	ok, err := New(db, time.Minute).Get(context.Background(), "analytics:agent:a1:stats", &got)

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, stats{TotalBookings: 3, TotalRevenue: 450.5}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_Miss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer mock.ClearExpect()
	mock.ExpectGet("analytics:tourist:t1:stats").RedisNil()

	var got stats
	ok, err := New(db, time.Minute).Get(context.Background(), "analytics:tourist:t1:stats", &got)

	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_GetError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer mock.ClearExpect()
	mock.ExpectGet("k").SetErr(errors.New("connection reset"))

	var got stats
	ok, err := New(db, time.Minute).Get(context.Background(), "k", &got)

	assert.Error(t, err)
	assert.False(t, ok)
}

func TestCache_CorruptValue(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer mock.ClearExpect()
	mock.ExpectGet("k").SetVal(`{not json`)

	var got stats
	ok, err := New(db, time.Minute).Get(context.Background(), "k", &got)

	assert.Error(t, err)
	assert.False(t, ok)
}

func TestCache_SetUsesTTL(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer mock.ClearExpect()
	mock.ExpectSet("analytics:agent:a1:stats", `{"totalBookings":1,"totalRevenue":99.9}`, 30*time.Second).SetVal("OK")

	err := New(db, 30*time.Second).Set(context.Background(), "analytics:agent:a1:stats", stats{TotalBookings: 1, TotalRevenue: 99.9})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
