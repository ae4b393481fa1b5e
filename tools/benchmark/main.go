package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strings"
	"sync"
	"syscall"
	"time"
)

const (
	defaultBaseURL     = "http://localhost:8080"
	defaultAssetRef    = "louvre-antiquities:1"
	progressInterval   = 2 * time.Second // How often to print a progress line
	maxRecordedSamples = 200000          // Latency samples kept per endpoint
)

type Config struct {
	BaseURL        string
	AssetRefs      []string      // Asset references to exercise the read endpoints with
	Concurrency    int           // Number of concurrent workers
	Duration       time.Duration // How long to run the benchmark
	RequestTimeout time.Duration // Timeout for each request
	OutputFile     string        // Output markdown file path (optional)
	Debug          bool
}

// target is a single read endpoint the benchmark drives
type target struct {
	Name string
	Path string
}

type EndpointStats struct {
	Name        string
	Count       int
	Succeeded   int
	Failed      int
	StatusCodes map[int]int
	Latencies   []time.Duration
	Total       time.Duration
	Min         time.Duration
	Max         time.Duration
}

type BenchmarkStats struct {
	BaseURL   string
	StartTime time.Time
	EndTime   time.Time
	Requests  int
	Succeeded int
	Failed    int
	Endpoints map[string]*EndpointStats
}

// collector accumulates request results from all workers
type collector struct {
	mu    sync.Mutex
	stats *BenchmarkStats
}

func newCollector(baseURL string) *collector {
	return &collector{
		stats: &BenchmarkStats{
			BaseURL:   baseURL,
			Endpoints: make(map[string]*EndpointStats),
		},
	}
}

func (c *collector) record(name string, status int, latency time.Duration, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ep, ok := c.stats.Endpoints[name]
	if !ok {
		ep = &EndpointStats{Name: name, StatusCodes: make(map[int]int)}
		c.stats.Endpoints[name] = ep
	}

	c.stats.Requests++
	ep.Count++
	ep.Total += latency
	if ep.Min == 0 || latency < ep.Min {
		ep.Min = latency
	}
	if latency > ep.Max {
		ep.Max = latency
	}
	if len(ep.Latencies) < maxRecordedSamples {
		ep.Latencies = append(ep.Latencies, latency)
	}

	if err != nil || status >= http.StatusInternalServerError {
		c.stats.Failed++
		ep.Failed++
	} else {
		c.stats.Succeeded++
		ep.Succeeded++
	}
	if err == nil {
		ep.StatusCodes[status]++
	}
}

func (c *collector) snapshot() BenchmarkStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return *c.stats
}

func main() {
	cfg := parseFlags()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Duration)
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	targets := buildTargets(cfg.AssetRefs)

	fmt.Printf("Benchmarking %s\n", cfg.BaseURL)
	fmt.Printf("Workers: %d, duration: %s, endpoints: %d\n\n", cfg.Concurrency, formatDuration(cfg.Duration), len(targets))

	client := &http.Client{Timeout: cfg.RequestTimeout}
	coll := newCollector(cfg.BaseURL)
	coll.stats.StartTime = time.Now()

	var wg sync.WaitGroup
	for i := 0; i < cfg.Concurrency; i++ {
		wg.Add(1)
		go func(offset int) {
			defer wg.Done()
			runWorker(ctx, client, cfg, targets, offset, coll)
		}(i)
	}

	// Progress reporting until the workers stop
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()
loop:
	for {
		select {
		case <-done:
			break loop
		case <-ticker.C:
			snap := coll.snapshot()
			elapsed := time.Since(snap.StartTime)
			fmt.Printf("\r⏳ %s elapsed, %d requests (%s), %d failed    ",
				formatDuration(elapsed), snap.Requests, formatRate(snap.Requests, elapsed), snap.Failed)
		}
	}

	coll.stats.EndTime = time.Now()
	stats := coll.snapshot()

	fmt.Println("\n\n" + strings.Repeat("=", 80))
	fmt.Println("BENCHMARK RESULTS")
	fmt.Println(strings.Repeat("=", 80))
	printStats(&stats)

	if cfg.OutputFile != "" {
		if err := writeMarkdownReport(cfg.OutputFile, &stats); err != nil {
			fmt.Printf("\n⚠️  Warning: Failed to write markdown file: %v\n", err)
		} else {
			fmt.Printf("\n✓ Report written to: %s\n", cfg.OutputFile)
		}
	}

	if stats.Failed > 0 {
		os.Exit(1)
	}
}

func parseFlags() *Config {
	cfg := &Config{}

	flag.StringVar(&cfg.BaseURL, "base-url", defaultBaseURL, "API server base URL")
	refs := flag.String("refs", defaultAssetRef, "Comma-separated asset references to query")
	flag.IntVar(&cfg.Concurrency, "concurrency", 5, "Number of concurrent workers (default: 5)")
	flag.StringVar(&cfg.OutputFile, "output", "", "Output markdown file path (optional)")
	flag.BoolVar(&cfg.Debug, "debug", false, "Enable debug logging")

	var durationSeconds, timeoutSeconds int
	flag.IntVar(&durationSeconds, "duration", 30, "Benchmark duration in seconds (default: 30)")
	flag.IntVar(&timeoutSeconds, "request-timeout", 10, "Timeout for each request in seconds (default: 10)")

	configFile := flag.String("config", "", "Path to config file (optional)")

	flag.Parse()

	cfg.Duration = time.Duration(durationSeconds) * time.Second
	cfg.RequestTimeout = time.Duration(timeoutSeconds) * time.Second

	for _, ref := range strings.Split(*refs, ",") {
		if ref = strings.TrimSpace(ref); ref != "" {
			cfg.AssetRefs = append(cfg.AssetRefs, ref)
		}
	}

	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 5
	}
	if cfg.Concurrency > 64 {
		cfg.Concurrency = 64 // Cap to avoid overwhelming the server
	}

	// Load from config file if specified
	if *configFile != "" {
		fileCfg, err := LoadConfig(*configFile)
		if err != nil {
			fmt.Printf("Warning: failed to load config file: %v\n", err)
		} else {
			// Override with file values if not set via flags
			if cfg.BaseURL == defaultBaseURL && fileCfg.BaseURL != "" {
				cfg.BaseURL = fileCfg.BaseURL
			}
			if *refs == defaultAssetRef && len(fileCfg.AssetRefs) > 0 {
				cfg.AssetRefs = fileCfg.AssetRefs
			}
		}
	}

	return cfg
}

// buildTargets returns the public read endpoints the benchmark cycles through
func buildTargets(refs []string) []target {
	targets := []target{
		{Name: "health", Path: "/health"},
		{Name: "registry", Path: "/api/v1/registry"},
		{Name: "exchange", Path: "/api/v1/exchange"},
	}
	for _, ref := range refs {
		targets = append(targets,
			target{Name: "asset", Path: "/api/v1/assets/" + ref},
			target{Name: "provenance", Path: "/api/v1/assets/" + ref + "/provenance"},
		)
	}
	return targets
}

// runWorker issues requests round-robin over the targets until the context ends.
// Each worker starts at a different offset so small target lists still spread.
func runWorker(ctx context.Context, client *http.Client, cfg *Config, targets []target, offset int, coll *collector) {
	for i := offset; ; i++ {
		select {
		case <-ctx.Done():
			return
		default:
		}

		t := targets[i%len(targets)]
		status, latency, err := doRequest(ctx, client, cfg.BaseURL+t.Path)
		if ctx.Err() != nil {
			return
		}
		coll.record(t.Name, status, latency, err)

		if cfg.Debug && err != nil {
			fmt.Printf("[DEBUG] %s: %v\n", t.Path, err)
		}
	}
}

func doRequest(ctx context.Context, client *http.Client, url string) (int, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, 0, err
	}

	start := time.Now()
	resp, err := client.Do(req)
	latency := time.Since(start)
	if err != nil {
		return 0, latency, err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	return resp.StatusCode, latency, nil
}

// percentile returns the p-th percentile of the samples (p in [0, 100]).
// The input slice is sorted in place.
func percentile(samples []time.Duration, p float64) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	idx := int(float64(len(samples)-1) * p / 100)
	return samples[idx]
}

func printStats(stats *BenchmarkStats) {
	elapsed := stats.EndTime.Sub(stats.StartTime)

	fmt.Printf("Target: %s\n", stats.BaseURL)
	fmt.Printf("  Duration:    %s\n", formatDuration(elapsed))
	fmt.Printf("  Requests:    %d (%s)\n", stats.Requests, formatRate(stats.Requests, elapsed))
	fmt.Printf("  Succeeded:   %d (%s)\n", stats.Succeeded, percentageString(stats.Succeeded, stats.Requests))
	if stats.Failed > 0 {
		fmt.Printf("  Failed:      %d (%s)\n", stats.Failed, percentageString(stats.Failed, stats.Requests))
	}
	fmt.Println()

	if len(stats.Endpoints) == 0 {
		fmt.Println("No requests completed.")
		fmt.Println(strings.Repeat("-", 80))
		return
	}

	// Sort endpoints by name
	var sorted []*EndpointStats
	for _, ep := range stats.Endpoints {
		sorted = append(sorted, ep)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	fmt.Println("Endpoint Breakdown:")
	fmt.Println()

	for _, ep := range sorted {
		fmt.Printf("  %s %s\n", statusEmoji(ep.Succeeded, ep.Failed), ep.Name)
		fmt.Printf("    Count:      %d (%s)\n", ep.Count, formatRate(ep.Count, elapsed))
		fmt.Printf("    Succeeded:  %d (%s)\n", ep.Succeeded, percentageString(ep.Succeeded, ep.Count))
		if ep.Failed > 0 {
			fmt.Printf("    Failed:     %d (%s)\n", ep.Failed, percentageString(ep.Failed, ep.Count))
		}
		if ep.Count > 0 {
			fmt.Printf("    Latency:    avg %s, min %s, max %s\n",
				formatDuration(ep.Total/time.Duration(ep.Count)), formatDuration(ep.Min), formatDuration(ep.Max))
			fmt.Printf("    Percentile: p50 %s, p95 %s, p99 %s\n",
				formatDuration(percentile(ep.Latencies, 50)),
				formatDuration(percentile(ep.Latencies, 95)),
				formatDuration(percentile(ep.Latencies, 99)))
		}
		if len(ep.StatusCodes) > 0 {
			var codes []int
			for code := range ep.StatusCodes {
				codes = append(codes, code)
			}
			sort.Ints(codes)
			var parts []string
			for _, code := range codes {
				parts = append(parts, fmt.Sprintf("%d×%d", code, ep.StatusCodes[code]))
			}
			fmt.Printf("    Statuses:   %s\n", strings.Join(parts, ", "))
		}
		fmt.Println()
	}

	fmt.Println(strings.Repeat("-", 80))
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	if d < time.Hour {
		minutes := int(d.Minutes())
		seconds := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

// writeMarkdownReport writes a markdown report of the benchmark results
func writeMarkdownReport(filepath string, stats *BenchmarkStats) error {
	file, err := os.Create(filepath)
	if err != nil {
		return err
	}
	defer func() {
		_ = file.Close()
	}()

	elapsed := stats.EndTime.Sub(stats.StartTime)

	_, _ = fmt.Fprintf(file, "# API Benchmark Report\n\n")
	_, _ = fmt.Fprintf(file, "Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05"))

	_, _ = fmt.Fprintf(file, "## Summary\n\n")
	_, _ = fmt.Fprintf(file, "| Property | Value |\n")
	_, _ = fmt.Fprintf(file, "|----------|-------|\n")
	_, _ = fmt.Fprintf(file, "| **Target** | %s |\n", stats.BaseURL)
	_, _ = fmt.Fprintf(file, "| **Duration** | %s |\n", formatDuration(elapsed))
	_, _ = fmt.Fprintf(file, "| **Requests** | %d |\n", stats.Requests)
	_, _ = fmt.Fprintf(file, "| **Throughput** | %s |\n", formatRate(stats.Requests, elapsed))
	_, _ = fmt.Fprintf(file, "| **Succeeded** | %d (%s) |\n", stats.Succeeded, percentageString(stats.Succeeded, stats.Requests))
	_, _ = fmt.Fprintf(file, "| **Failed** | %d (%s) |\n\n", stats.Failed, percentageString(stats.Failed, stats.Requests))

	if len(stats.Endpoints) == 0 {
		return nil
	}

	var sorted []*EndpointStats
	for _, ep := range stats.Endpoints {
		sorted = append(sorted, ep)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	_, _ = fmt.Fprintf(file, "## Endpoints\n\n")
	_, _ = fmt.Fprintf(file, "| Endpoint | Count | Succeeded | Failed | Avg | p50 | p95 | p99 |\n")
	_, _ = fmt.Fprintf(file, "|----------|-------|-----------|--------|-----|-----|-----|-----|\n")
	for _, ep := range sorted {
		avg := time.Duration(0)
		if ep.Count > 0 {
			avg = ep.Total / time.Duration(ep.Count)
		}
		_, _ = fmt.Fprintf(file, "| %s | %d | %d | %d | %s | %s | %s | %s |\n",
			ep.Name, ep.Count, ep.Succeeded, ep.Failed,
			formatDuration(avg),
			formatDuration(percentile(ep.Latencies, 50)),
			formatDuration(percentile(ep.Latencies, 95)),
			formatDuration(percentile(ep.Latencies, 99)))
	}

	return nil
}
