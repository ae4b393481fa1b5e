package main

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		want     string
	}{
		{
			name:     "milliseconds",
			duration: 500 * time.Millisecond,
			want:     "500ms",
		},
		{
			name:     "seconds",
			duration: 5 * time.Second,
			want:     "5.00s",
		},
		{
			name:     "minutes",
			duration: 2*time.Minute + 30*time.Second,
			want:     "2m 30s",
		},
		{
			name:     "hours",
			duration: 1*time.Hour + 15*time.Minute,
			want:     "1h 15m",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatDuration(tt.duration)
			if got != tt.want {
				t.Errorf("formatDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPercentile(t *testing.T) {
	samples := []time.Duration{
		10 * time.Millisecond,
		20 * time.Millisecond,
		30 * time.Millisecond,
		40 * time.Millisecond,
		50 * time.Millisecond,
		60 * time.Millisecond,
		70 * time.Millisecond,
		80 * time.Millisecond,
		90 * time.Millisecond,
		100 * time.Millisecond,
	}

	tests := []struct {
		name string
		p    float64
		want time.Duration
	}{
		{
			name: "p50",
			p:    50,
			want: 50 * time.Millisecond,
		},
		{
			name: "p99",
			p:    99,
			want: 90 * time.Millisecond,
		},
		{
			name: "p100",
			p:    100,
			want: 100 * time.Millisecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := percentile(samples, tt.p)
			if got != tt.want {
				t.Errorf("percentile() = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("empty", func(t *testing.T) {
		if got := percentile(nil, 50); got != 0 {
			t.Errorf("percentile() = %v, want 0", got)
		}
	})
}

func TestPercentageString(t *testing.T) {
	tests := []struct {
		name  string
		part  int
		total int
		want  string
	}{
		{
			name:  "half",
			part:  1,
			total: 2,
			want:  "50.00%",
		},
		{
			name:  "zero total",
			part:  5,
			total: 0,
			want:  "0.00%",
		},
		{
			name:  "full",
			part:  3,
			total: 3,
			want:  "100.00%",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := percentageString(tt.part, tt.total)
			if got != tt.want {
				t.Errorf("percentageString() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildTargets(t *testing.T) {
	targets := buildTargets([]string{"louvre-antiquities:1", "uffizi-paintings:9"})

	if len(targets) != 7 {
		t.Fatalf("buildTargets() returned %d targets, want 7", len(targets))
	}
	if targets[0].Path != "/health" {
		t.Errorf("first target = %v, want /health", targets[0].Path)
	}
	if targets[3].Path != "/api/v1/assets/louvre-antiquities:1" {
		t.Errorf("asset target = %v, want /api/v1/assets/louvre-antiquities:1", targets[3].Path)
	}
	if targets[6].Path != "/api/v1/assets/uffizi-paintings:9/provenance" {
		t.Errorf("provenance target = %v, want /api/v1/assets/uffizi-paintings:9/provenance", targets[6].Path)
	}
}

func TestCollectorRecord(t *testing.T) {
	coll := newCollector("http://localhost:8080")

	coll.record("asset", 200, 10*time.Millisecond, nil)
	coll.record("asset", 404, 5*time.Millisecond, nil)
	coll.record("asset", 500, 20*time.Millisecond, nil)

	stats := coll.snapshot()
	if stats.Requests != 3 {
		t.Errorf("Requests = %d, want 3", stats.Requests)
	}
	if stats.Failed != 1 {
		t.Errorf("Failed = %d, want 1", stats.Failed)
	}

	ep := stats.Endpoints["asset"]
	if ep == nil {
		t.Fatal("endpoint stats missing")
	}
	if ep.Succeeded != 2 {
		t.Errorf("Succeeded = %d, want 2", ep.Succeeded)
	}
	if ep.Min != 5*time.Millisecond {
		t.Errorf("Min = %v, want 5ms", ep.Min)
	}
	if ep.Max != 20*time.Millisecond {
		t.Errorf("Max = %v, want 20ms", ep.Max)
	}
	if ep.StatusCodes[404] != 1 {
		t.Errorf("StatusCodes[404] = %d, want 1", ep.StatusCodes[404])
	}
}
