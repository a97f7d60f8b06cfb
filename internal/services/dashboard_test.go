package services

import (
	"testing"
	"time"
)

func TestWeekWindow_StartsOnMonday(t *testing.T) {
	// Wednesday 2024-05-15.
	wednesday := time.Date(2024, 5, 15, 13, 45, 0, 0, time.UTC)
	start, end := weekWindow(wednesday)

	if start.Weekday() != time.Monday {
		t.Fatalf("expected Monday start, got %v", start.Weekday())
	}
	if start.Day() != 13 || start.Hour() != 0 || start.Minute() != 0 {
		t.Fatalf("unexpected window start: %v", start)
	}
	if end.Weekday() != time.Sunday {
		t.Fatalf("expected Sunday end, got %v", end.Weekday())
	}
	if !end.After(wednesday) {
		t.Fatalf("window must contain the input time")
	}
}

func TestWeekWindow_SundayBelongsToPreviousMonday(t *testing.T) {
	// Sunday 2024-05-19 belongs to the week that started Monday the 13th.
	sunday := time.Date(2024, 5, 19, 8, 0, 0, 0, time.UTC)
	start, end := weekWindow(sunday)

	if start.Weekday() != time.Monday || start.Day() != 13 {
		t.Fatalf("unexpected window start: %v", start)
	}
	if end.Before(sunday) {
		t.Fatalf("window must contain the input time")
	}
}

func TestGrowthPercent(t *testing.T) {
	cases := []struct {
		total    int64
		thisWeek int64
		want     string
	}{
		{0, 0, "0"},
		{10, 0, "0.0"},
		{10, 5, "100.0"},
		{3, 3, "300.0"},
	}
	for _, tc := range cases {
		if got := growthPercent(tc.total, tc.thisWeek); got != tc.want {
			t.Fatalf("growthPercent(%d, %d) = %q, want %q", tc.total, tc.thisWeek, got, tc.want)
		}
	}
}
