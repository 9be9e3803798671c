package service

import (
	"fmt"
	"math"

	"github.com/guillermoBallester/hzmeta/internal/core/domain"
)

// ValueCodec converts a raw value into the Go representation of a column
// family. nil passes through unchanged.
type ValueCodec interface {
	Encode(family domain.TypeFamily, v any) (any, error)
}

// StandardCodec maps VARCHAR to string, BOOLEAN to bool and the integer
// families to int8, int16, int32 and int64, rejecting values out of range.
type StandardCodec struct{}

func NewStandardCodec() StandardCodec {
	return StandardCodec{}
}

func (StandardCodec) Encode(family domain.TypeFamily, v any) (any, error) {
	if v == nil {
		return nil, nil
	}

	switch family {
	case domain.FamilyVarchar:
		switch s := v.(type) {
		case string:
			return s, nil
		case []byte:
			return string(s), nil
		}
	case domain.FamilyBoolean:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case domain.FamilyTinyint:
		n, err := encodeInt(family, v, math.MinInt8, math.MaxInt8)
		if err != nil {
			return nil, err
		}
		return int8(n), nil
	case domain.FamilySmallint:
		n, err := encodeInt(family, v, math.MinInt16, math.MaxInt16)
		if err != nil {
			return nil, err
		}
		return int16(n), nil
	case domain.FamilyInteger:
		n, err := encodeInt(family, v, math.MinInt32, math.MaxInt32)
		if err != nil {
			return nil, err
		}
		return int32(n), nil
	case domain.FamilyBigint:
		n, err := encodeInt(family, v, math.MinInt64, math.MaxInt64)
		if err != nil {
			return nil, err
		}
		return n, nil
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, family)
	}
	return nil, fmt.Errorf("%w: %T as %s", domain.ErrValueEncoding, v, family)
}

func encodeInt(family domain.TypeFamily, v any, lo, hi int64) (int64, error) {
	var n int64
	switch x := v.(type) {
	case int:
		n = int64(x)
	case int8:
		n = int64(x)
	case int16:
		n = int64(x)
	case int32:
		n = int64(x)
	case int64:
		n = x
	case uint8:
		n = int64(x)
	case uint16:
		n = int64(x)
	case uint32:
		n = int64(x)
	default:
		return 0, fmt.Errorf("%w: %T as %s", domain.ErrValueEncoding, v, family)
	}
	if n < lo || n > hi {
		return 0, fmt.Errorf("%w: %d out of range for %s", domain.ErrValueEncoding, n, family)
	}
	return n, nil
}
