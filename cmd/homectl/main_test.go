package main

import (
	"testing"
	"time"
)

func TestParseIngestFlags(t *testing.T) {
	o, err := parseIngestFlags([]string{"-mac", " aa:bb:cc:dd:ee:ff ", "-temperature", "21.5", "-pressure", "1013", "-count", "3", "-interval", "1s"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if o.mac != "aa:bb:cc:dd:ee:ff" || o.temp != 21.5 || o.pressure != 1013 || o.count != 3 || o.interval != time.Second {
		t.Fatalf("unexpected opts: %+v", o)
	}
}

func TestParseIngestFlagsErrors(t *testing.T) {
	cases := map[string][]string{
		"missing mac":           {"-temperature", "1"},
		"zero count":            {"-mac", "aa:bb:cc:dd:ee:ff", "-count", "0"},
		"timestamp with repeat": {"-mac", "aa:bb:cc:dd:ee:ff", "-count", "2", "-timestamp", "2025-01-01 00:00:00"},
		"unknown flag":          {"-mac", "aa:bb:cc:dd:ee:ff", "-frobnicate"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := parseIngestFlags(args); err == nil {
				t.Fatalf("expected error for %v", args)
			}
		})
	}
}

func TestIngestOptsReading(t *testing.T) {
	o := ingestOpts{mac: "x", temp: 1, pressure: 2, tempUnit: "°F", timestamp: "2025-01-02 03:04:05"}
	r, err := o.reading()
	if err != nil {
		t.Fatalf("reading: %v", err)
	}
	if !r.Timestamp.Equal(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)) || r.TemperatureUnit != "°F" {
		t.Fatalf("unexpected reading: %+v", r)
	}

	o.timestamp = "soon"
	if _, err := o.reading(); err == nil {
		t.Fatalf("expected invalid timestamp to fail")
	}
}
