package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mmcdole/fitdeck/internal/config"
	"github.com/mmcdole/fitdeck/internal/log"
	"github.com/mmcdole/fitdeck/internal/service"
	"github.com/mmcdole/fitdeck/internal/store"
)

var testNow = time.Date(2026, time.October, 19, 10, 31, 0, 0, time.UTC)

func services(t *testing.T) (*service.MetricService, *service.ActivityService) {
	t.Helper()
	st, err := store.Open("")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	logger := log.NullLogger()
	if err := service.Seed(context.Background(), st, service.SeedOptions{Name: "Vinay"}, testNow, logger); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	clock := func() time.Time { return testNow }
	return service.NewMetricService(st, logger, clock),
		service.NewActivityService(st, logger, clock, service.RefreshOptions{})
}

func TestAddReading(t *testing.T) {
	metrics, _ := services(t)

	tests := []struct {
		name    string
		query   string
		args    []string
		want    string
		wantErr bool
	}{
		{"exact id", "waist", []string{"31.5"}, "Added 31.5 in to Waist", false},
		{"loose name", "wtr", []string{"2"}, "Added 2 L to Water intake", false},
		{"missing value", "weight", nil, "", true},
		{"bad value", "weight", []string{"heavy"}, "", true},
		{"unknown metric", "zzz", []string{"1"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := addReading(context.Background(), metrics, tt.query, tt.args, &out)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got := strings.TrimSpace(out.String()); got != tt.want {
				t.Fatalf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrintSummary(t *testing.T) {
	metrics, activity := services(t)

	var out bytes.Buffer
	if err := printSummary(context.Background(), activity, metrics, &out); err != nil {
		t.Fatalf("printSummary: %v", err)
	}
	for _, want := range []string{
		"MONDAY, OCT 19",
		"Good Morning, Vinay",
		"Streak      3 days",
		"2,847 / 10,000",
		"1.5 kg to goal",
		"Weight        69.5 kg",
		"Shoulders     -",
		"You missed 1 workout",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("summary missing %q:\n%s", want, out.String())
		}
	}
}

func TestDarkScheme(t *testing.T) {
	if !darkScheme(config.SchemeDark) || darkScheme(config.SchemeLight) {
		t.Fatal("explicit schemes not honoured")
	}
}
