package types

import (
	"encoding/json"
	"testing"
)

func TestSnowflakeIDJSONIsString(t *testing.T) {
	b, err := json.Marshal(SnowflakeID(1789012345678901248))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"1789012345678901248"` {
		t.Fatalf("unexpected json %s", b)
	}
}

func TestSnowflakeIDRoundTrip(t *testing.T) {
	in := SnowflakeID(1789012345678901248)
	b, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	var out SnowflakeID
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Fatalf("got %d, want %d", out, in)
	}
	for _, bad := range []string{`42`, `"x"`} {
		var c SnowflakeID
		if err := json.Unmarshal([]byte(bad), &c); err == nil {
			t.Fatalf("expected error for %s", bad)
		}
	}
}

func TestSnowflakeIDScan(t *testing.T) {
	var s SnowflakeID
	for _, v := range []interface{}{int64(7), []byte("7"), "7"} {
		if err := s.Scan(v); err != nil || s != 7 {
			t.Fatalf("scan %v: %v %d", v, err, s)
		}
	}
	if err := s.Scan(3.5); err == nil {
		t.Fatal("expected error for float")
	}
}
