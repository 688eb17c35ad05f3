package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"homehub/pkg/homeclient"
)

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "ingest":
		err = runIngest(ctx, args)
	case "health":
		err = runHealth(ctx, args)
	default:
		usage()
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n", os.Args[0])
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  ingest   Post sensor readings for a device MAC address")
	fmt.Fprintln(os.Stderr, "  health   Check that the server is up")
	os.Exit(2)
}

type ingestOpts struct {
	baseURL   string
	mac       string
	temp      float64
	pressure  float64
	tempUnit  string
	presUnit  string
	timestamp string
	count     int
	interval  time.Duration
}

func parseIngestFlags(args []string) (ingestOpts, error) {
	fs := flag.NewFlagSet("ingest", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var o ingestOpts
	fs.StringVar(&o.baseURL, "base-url", getenv("HOMECTL_BASE_URL", "http://localhost:8000"), "homehub base URL")
	fs.StringVar(&o.mac, "mac", "", "device MAC address (required)")
	fs.Float64Var(&o.temp, "temperature", 0, "temperature reading")
	fs.Float64Var(&o.pressure, "pressure", 0, "pressure reading")
	fs.StringVar(&o.tempUnit, "temperature-unit", "", "temperature unit (server default °C)")
	fs.StringVar(&o.presUnit, "pressure-unit", "", "pressure unit (server default hPa)")
	fs.StringVar(&o.timestamp, "timestamp", "", `reading time "2006-01-02 15:04:05" UTC; empty uses server time`)
	fs.IntVar(&o.count, "count", 1, "number of readings to send")
	fs.DurationVar(&o.interval, "interval", 5*time.Second, "delay between readings when count > 1")

	if err := fs.Parse(args); err != nil {
		return ingestOpts{}, err
	}
	o.mac = strings.TrimSpace(o.mac)
	if o.mac == "" {
		return ingestOpts{}, fmt.Errorf("-mac is required")
	}
	if o.count < 1 {
		return ingestOpts{}, fmt.Errorf("count must be at least 1")
	}
	if o.timestamp != "" && o.count > 1 {
		return ingestOpts{}, fmt.Errorf("-timestamp cannot be combined with -count > 1")
	}
	return o, nil
}

func (o ingestOpts) reading() (homeclient.Reading, error) {
	r := homeclient.Reading{
		Temperature:     o.temp,
		Pressure:        o.pressure,
		TemperatureUnit: o.tempUnit,
		PressureUnit:    o.presUnit,
	}
	if o.timestamp != "" {
		ts, err := time.ParseInLocation(homeclient.TimeLayout, o.timestamp, time.UTC)
		if err != nil {
			return homeclient.Reading{}, fmt.Errorf("invalid -timestamp: %w", err)
		}
		r.Timestamp = ts
	}
	return r, nil
}

func runIngest(ctx context.Context, args []string) error {
	o, err := parseIngestFlags(args)
	if err != nil {
		return err
	}
	r, err := o.reading()
	if err != nil {
		return err
	}

	c := homeclient.New(o.baseURL, 10*time.Second)
	for i := 0; i < o.count; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(o.interval):
			}
		}
		if err := c.IngestReading(ctx, o.mac, r); err != nil {
			return err
		}
		if err := printJSON(struct {
			Seq         int     `json:"seq"`
			MAC         string  `json:"mac_address"`
			Temperature float64 `json:"temperature"`
			Pressure    float64 `json:"pressure"`
		}{i + 1, o.mac, r.Temperature, r.Pressure}); err != nil {
			return err
		}
	}
	return nil
}

func runHealth(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("health", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	baseURL := fs.String("base-url", getenv("HOMECTL_BASE_URL", "http://localhost:8000"), "homehub base URL")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := homeclient.New(*baseURL, 5*time.Second).Health(ctx); err != nil {
		return err
	}
	fmt.Println("ok")
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
