// Package rowconv coerces raw driver values into the string, bool and int64
// shapes the catalog cursors expose. Engines disagree on how they report
// information_schema columns (is_nullable as bool, 'YES'/'NO' or 0/1;
// ordinal_position as int, numeric text or a domain type), so every adapter
// funnels its raw values through here.
package rowconv

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

var (
	ErrNull        = errors.New("unexpected NULL")
	ErrConversion  = errors.New("cannot convert value")
	ErrColumnIndex = errors.New("column index out of range")
)

// Row is one raw driver row addressed by ordinal.
type Row []any

func (r Row) at(i int) (any, error) {
	if i < 0 || i >= len(r) {
		return nil, fmt.Errorf("%w: %d of %d", ErrColumnIndex, i, len(r))
	}
	return r[i], nil
}

func (r Row) String(i int) (string, error) {
	v, err := r.at(i)
	if err != nil {
		return "", err
	}
	return String(v)
}

func (r Row) Bool(i int) (bool, error) {
	v, err := r.at(i)
	if err != nil {
		return false, err
	}
	return Bool(v)
}

func (r Row) Int(i int) (int64, error) {
	v, err := r.at(i)
	if err != nil {
		return 0, err
	}
	return Int(v)
}

// String accepts text values.
func String(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", ErrNull
	case string:
		return x, nil
	case []byte:
		return string(x), nil
	case fmt.Stringer:
		return x.String(), nil
	default:
		return "", fmt.Errorf("%w: %T to string", ErrConversion, v)
	}
}

// Bool accepts booleans, 0/1 integers and the text forms YES/NO, TRUE/FALSE,
// ON/OFF, Y/N and 1/0 in any case.
func Bool(v any) (bool, error) {
	switch x := v.(type) {
	case nil:
		return false, ErrNull
	case bool:
		return x, nil
	case string:
		return parseBool(x)
	case []byte:
		return parseBool(string(x))
	}

	n, err := Int(v)
	if err != nil {
		return false, fmt.Errorf("%w: %T to bool", ErrConversion, v)
	}
	switch n {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return false, fmt.Errorf("%w: %d to bool", ErrConversion, n)
}

func parseBool(s string) (bool, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "YES", "Y", "TRUE", "T", "ON", "1":
		return true, nil
	case "NO", "N", "FALSE", "F", "OFF", "0":
		return false, nil
	}
	return false, fmt.Errorf("%w: %q to bool", ErrConversion, s)
}

// Int accepts Go integers, integral floats, decimal and pgtype numerics and
// integral numeric text.
func Int(v any) (int64, error) {
	switch x := v.(type) {
	case nil:
		return 0, ErrNull
	case int:
		return int64(x), nil
	case int8:
		return int64(x), nil
	case int16:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case int64:
		return x, nil
	case uint8:
		return int64(x), nil
	case uint16:
		return int64(x), nil
	case uint32:
		return int64(x), nil
	case uint64:
		if x > math.MaxInt64 {
			return 0, fmt.Errorf("%w: %d overflows int64", ErrConversion, x)
		}
		return int64(x), nil
	case float32:
		return fromDecimal(decimal.NewFromFloat32(x))
	case float64:
		return fromDecimal(decimal.NewFromFloat(x))
	case decimal.Decimal:
		return fromDecimal(x)
	case string:
		return parseInt(x)
	case []byte:
		return parseInt(string(x))
	case pgtype.Int64Valuer:
		n, err := x.Int64Value()
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrConversion, err)
		}
		if !n.Valid {
			return 0, ErrNull
		}
		return n.Int64, nil
	default:
		return 0, fmt.Errorf("%w: %T to int", ErrConversion, v)
	}
}

func parseInt(s string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q to int", ErrConversion, s)
	}
	return fromDecimal(d)
}

var (
	minInt64 = decimal.NewFromInt(math.MinInt64)
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
)

func fromDecimal(d decimal.Decimal) (int64, error) {
	if !d.IsInteger() {
		return 0, fmt.Errorf("%w: %s is not integral", ErrConversion, d)
	}
	if d.LessThan(minInt64) || d.GreaterThan(maxInt64) {
		return 0, fmt.Errorf("%w: %s overflows int64", ErrConversion, d)
	}
	return d.IntPart(), nil
}
