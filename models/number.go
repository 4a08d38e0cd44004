package models

import (
	"database/sql/driver"
	"fmt"
	"math/big"
	"strings"
	"time"
)

// Number is a big.Int persisted as a decimal string. Absent/empty values
// scan as zero.
type Number big.Int

func NewNumber(i int64) *Number {
	return (*Number)(big.NewInt(i))
}

func NewNumberFromString(s string) (*Number, error) {
	i, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid number: %s", s)
	}
	return (*Number)(i), nil
}

func (n *Number) Int() *big.Int {
	if n == nil {
		return big.NewInt(0)
	}
	return (*big.Int)(n)
}

func (n *Number) String() string {
	return n.Int().String()
}

func (n *Number) Cmp(o *Number) int {
	return n.Int().Cmp(o.Int())
}

func (n *Number) Value() (driver.Value, error) {
	return n.String(), nil
}

func (n *Number) Scan(value interface{}) error {
	var s string
	switch v := value.(type) {
	case nil:
		s = "0"
	case string:
		s = v
	case []byte:
		s = string(v)
	case int64:
		s = fmt.Sprintf("%d", v)
	default:
		return fmt.Errorf("number scan: unsupported type %T", value)
	}

	if s == "" {
		s = "0"
	}

	i, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return fmt.Errorf("number scan: invalid value %q", s)
	}

	*n = Number(*i)
	return nil
}

func (n *Number) MarshalJSON() ([]byte, error) {
	return []byte(`"` + n.String() + `"`), nil
}

func (n *Number) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		s = "0"
	}

	i, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return fmt.Errorf("number unmarshal: invalid value %q", s)
	}

	*n = Number(*i)
	return nil
}

// LocalTime is a unix-seconds timestamp rendered as a datetime string in
// JSON responses.
type LocalTime int64

func (t LocalTime) MarshalJSON() ([]byte, error) {
	if t == 0 {
		return []byte(`""`), nil
	}
	return []byte(`"` + time.Unix(int64(t), 0).Format("2006-01-02 15:04:05") + `"`), nil
}

func (t LocalTime) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *LocalTime) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*t = 0
	case int64:
		*t = LocalTime(v)
	case time.Time:
		*t = LocalTime(v.Unix())
	default:
		return fmt.Errorf("localtime scan: unsupported type %T", value)
	}
	return nil
}
