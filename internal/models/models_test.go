package models

import (
	"encoding/json"
	"testing"
	"time"
)

// TestNumberFlexibleDecoding verifies Number accepts both JSON numbers
// and the string encodings the original client wrote, and rejects
// non-finite values.
func TestNumberFlexibleDecoding(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{`100`, 100},
		{`"100"`, 100},
		{`"45.36"`, 45.36},
		{`null`, 0},
		{`""`, 0},
	}
	for _, c := range cases {
		var n Number
		if err := json.Unmarshal([]byte(c.in), &n); err != nil {
			t.Errorf("Unmarshal(%s): %v", c.in, err)
			continue
		}
		if float64(n) != c.want {
			t.Errorf("Unmarshal(%s) = %v, want %v", c.in, n, c.want)
		}
	}

	for _, in := range []string{`"abc"`, `"NaN"`, `"+Inf"`} {
		var n Number
		if err := json.Unmarshal([]byte(in), &n); err == nil {
			t.Errorf("Unmarshal(%s) accepted, want error", in)
		}
	}
}

// TestCountFlexibleDecoding verifies Count truncates fractional and
// string-encoded values to integers.
func TestCountFlexibleDecoding(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{`10`, 10},
		{`"10"`, 10},
		{`10.9`, 10},
	}
	for _, c := range cases {
		var n Count
		if err := json.Unmarshal([]byte(c.in), &n); err != nil {
			t.Errorf("Unmarshal(%s): %v", c.in, err)
			continue
		}
		if int(n) != c.want {
			t.Errorf("Unmarshal(%s) = %d, want %d", c.in, n, c.want)
		}
	}
}

// TestNumberMarshalsAsNumber verifies persisted documents carry numeric
// JSON, not the legacy string encoding.
func TestNumberMarshalsAsNumber(t *testing.T) {
	data, err := json.Marshal(WeightEntry{Date: "2024-01-05", Weight: 70.5})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"date":"2024-01-05","weight":70.5}`
	if string(data) != want {
		t.Errorf("marshal = %s, want %s", data, want)
	}
}

// TestKgFromLbs verifies the lbs→kg derivation matches the original
// client's constant and two-decimal rounding.
func TestKgFromLbs(t *testing.T) {
	cases := []struct {
		lbs, kg float64
	}{
		{100, 45.36},
		{225, 102.06},
		{1, 0.45},
	}
	for _, c := range cases {
		if got := KgFromLbs(c.lbs); got != c.kg {
			t.Errorf("KgFromLbs(%v) = %v, want %v", c.lbs, got, c.kg)
		}
	}
}

// TestSameCalendarDate verifies date-only comparison ignores time of day.
func TestSameCalendarDate(t *testing.T) {
	morning := time.Date(2024, 1, 5, 8, 0, 0, 0, time.UTC)
	night := time.Date(2024, 1, 5, 23, 59, 0, 0, time.UTC)
	nextDay := time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)

	if !SameCalendarDate(morning, night) {
		t.Error("same-day timestamps compared unequal")
	}
	if SameCalendarDate(night, nextDay) {
		t.Error("adjacent days compared equal")
	}
}

// TestValidSelection verifies catalog membership checks.
func TestValidSelection(t *testing.T) {
	if !ValidSelection("Chest", "Bench Press") {
		t.Error("Bench Press should be valid for Chest")
	}
	if ValidSelection("Chest", "Squat") {
		t.Error("Squat should not be valid for Chest")
	}
	if ValidSelection("Cardio", "Running") {
		t.Error("unknown muscle group accepted")
	}
}
