package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
)

// SnowflakeID is an upload log id. It is stored as BIGINT and travels in JSON
// as a quoted string because the values exceed what a JS number holds exactly.
type SnowflakeID int64

func ParseSnowflakeID(s string) (SnowflakeID, error) {
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid snowflake id %q", s)
	}
	return SnowflakeID(i), nil
}

func (s SnowflakeID) Value() (driver.Value, error) {
	return int64(s), nil
}

// Scan accepts the integer most drivers return and the text form some
// drivers use for BIGINT columns.
func (s *SnowflakeID) Scan(value interface{}) (err error) {
	switch v := value.(type) {
	case int64:
		*s = SnowflakeID(v)
	case []byte:
		*s, err = ParseSnowflakeID(string(v))
	case string:
		*s, err = ParseSnowflakeID(v)
	default:
		err = fmt.Errorf("cannot scan %T into SnowflakeID", value)
	}
	return err
}

func (s SnowflakeID) String() string {
	return strconv.FormatInt(int64(s), 10)
}

func (s SnowflakeID) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON reads back the quoted form written by MarshalJSON.
func (s *SnowflakeID) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("snowflake id must be a JSON string: %w", err)
	}
	id, err := ParseSnowflakeID(str)
	if err != nil {
		return err
	}
	*s = id
	return nil
}
