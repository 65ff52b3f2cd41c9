// README: Benchmark runner; builds a synthetic city in-process, exercises routing and hailing, and prints results.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"
)

func main() {
	cfg := loadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	bench := NewRunner(cfg)
	results := bench.RunAll(ctx)

	fmt.Println("\n== Summary ==")
	pass, fail, skipped := 0, 0, 0
	for _, r := range results {
		switch r.Status {
		case "PASS":
			pass++
		case "FAIL":
			fail++
		case "SKIP":
			skipped++
		}
	}
	fmt.Printf("PASS=%d FAIL=%d SKIP=%d\n", pass, fail, skipped)

	if fail > 0 || (cfg.Strict && skipped > 0) {
		os.Exit(1)
	}
}

type Config struct {
	BaseURL     string
	Locations   int
	Roads       int
	Drivers     int
	Hails       int
	Concurrency int
	Strict      bool
	Timeout     time.Duration
}

func loadConfig() Config {
	var cfg Config
	flag.StringVar(&cfg.BaseURL, "base-url", envOrDefault("DISPATCH_BENCH_BASE_URL", ""), "running API to probe (empty skips the HTTP case)")
	flag.IntVar(&cfg.Locations, "locations", envOrDefaultInt("DISPATCH_BENCH_LOCATIONS", 200), "synthetic locations")
	flag.IntVar(&cfg.Roads, "roads", envOrDefaultInt("DISPATCH_BENCH_ROADS", 600), "extra roads on top of the ring")
	flag.IntVar(&cfg.Drivers, "drivers", envOrDefaultInt("DISPATCH_BENCH_DRIVERS", 100), "drivers with one vehicle each")
	flag.IntVar(&cfg.Hails, "hails", envOrDefaultInt("DISPATCH_BENCH_HAILS", 500), "ride requests in the hail case")
	flag.IntVar(&cfg.Concurrency, "concurrency", envOrDefaultInt("DISPATCH_BENCH_CONCURRENCY", 20), "concurrent hailers")
	flag.BoolVar(&cfg.Strict, "strict", envOrDefaultBool("DISPATCH_BENCH_STRICT", false), "fail on skipped cases")
	flag.DurationVar(&cfg.Timeout, "timeout", envOrDefaultDuration("DISPATCH_BENCH_TIMEOUT", 60*time.Second), "total timeout")
	flag.Parse()
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Locations < 2 {
		cfg.Locations = 2
	}
	return cfg
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		v = strings.ToLower(v)
		return v == "1" || v == "true" || v == "yes"
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var n int
		_, _ = fmt.Sscanf(v, "%d", &n)
		if n > 0 {
			return n
		}
	}
	return def
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
