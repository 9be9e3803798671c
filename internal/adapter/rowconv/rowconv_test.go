package rowconv

import (
	"math"
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBool(t *testing.T) {
	tests := []struct {
		in   any
		want bool
	}{
		{true, true},
		{false, false},
		{"YES", true},
		{"no", false},
		{" true ", true},
		{"FALSE", false},
		{"1", true},
		{"0", false},
		{[]byte("YES"), true},
		{int64(1), true},
		{int32(0), false},
		{uint8(1), true},
	}
	for _, tt := range tests {
		got, err := Bool(tt.in)
		require.NoError(t, err, "%#v", tt.in)
		assert.Equal(t, tt.want, got, "%#v", tt.in)
	}
}

func TestBool_Rejects(t *testing.T) {
	for _, in := range []any{"maybe", "UNKNOWN", 2, 1.5} {
		_, err := Bool(in)
		assert.ErrorIs(t, err, ErrConversion, "%#v", in)
	}
	_, err := Bool(nil)
	assert.ErrorIs(t, err, ErrNull)
}

func TestInt(t *testing.T) {
	tests := []struct {
		in   any
		want int64
	}{
		{1, 1},
		{int8(-3), -3},
		{int16(7), 7},
		{int32(42), 42},
		{int64(math.MaxInt64), math.MaxInt64},
		{uint32(9), 9},
		{uint64(10), 10},
		{float64(3), 3},
		{"17", 17},
		{" 18 ", 18},
		{"2.000", 2},
		{[]byte("5"), 5},
		{decimal.NewFromInt(99), 99},
		{pgtype.Int8{Int64: 12, Valid: true}, 12},
	}
	for _, tt := range tests {
		got, err := Int(tt.in)
		require.NoError(t, err, "%#v", tt.in)
		assert.Equal(t, tt.want, got, "%#v", tt.in)
	}
}

func TestInt_Rejects(t *testing.T) {
	for _, in := range []any{"abc", "1.5", 2.25, uint64(math.MaxUint64), "99999999999999999999", true} {
		_, err := Int(in)
		assert.ErrorIs(t, err, ErrConversion, "%#v", in)
	}
	_, err := Int(nil)
	assert.ErrorIs(t, err, ErrNull)
	_, err = Int(pgtype.Int8{})
	assert.ErrorIs(t, err, ErrNull)
}

func TestString(t *testing.T) {
	s, err := String("person")
	require.NoError(t, err)
	assert.Equal(t, "person", s)

	s, err = String([]byte("age"))
	require.NoError(t, err)
	assert.Equal(t, "age", s)

	_, err = String(nil)
	assert.ErrorIs(t, err, ErrNull)
	_, err = String(12)
	assert.ErrorIs(t, err, ErrConversion)
}

func TestRow(t *testing.T) {
	r := Row{"hazelcast", "YES", int32(2)}

	s, err := r.String(0)
	require.NoError(t, err)
	assert.Equal(t, "hazelcast", s)

	b, err := r.Bool(1)
	require.NoError(t, err)
	assert.True(t, b)

	n, err := r.Int(2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = r.String(3)
	assert.ErrorIs(t, err, ErrColumnIndex)
}
