package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/phantomcms/phantom"
)

func main() {
	count := flag.Int("count", 1000, "Number of entries to generate")
	keep := flag.Bool("keep", false, "Keep the benchmark directory after running")
	flag.Parse()

	benchDir, err := os.MkdirTemp("", "phantom_bench_")
	if err != nil {
		panic(err)
	}
	defer func() {
		if !*keep {
			os.RemoveAll(benchDir)
		} else {
			fmt.Printf("Keeping bench dir: %s\n", benchDir)
		}
	}()

	fmt.Printf("Generating %d entries in %s...\n", *count, benchDir)
	startGen := time.Now()

	// Direct file writes to simulate an existing content directory.
	for i := 0; i < *count; i++ {
		content := fmt.Sprintf("---\ntitle: Entry %d\ndate: %s\nstatus: publish\n---\n# Benchmark Entry %d\nThis is a test entry.", i, time.Now().Format("2006-01-02"), i)
		filename := filepath.Join(benchDir, fmt.Sprintf("entry_%d.md", i))
		if err := os.WriteFile(filename, []byte(content), 0644); err != nil {
			panic(err)
		}
	}
	fmt.Printf("Generation took: %v\n", time.Since(startGen))

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	service, err := phantom.New(benchDir,
		phantom.WithLogger(logger),
		phantom.WithMustExist(true),
	)
	if err != nil {
		panic(err)
	}

	ctx := context.TODO()

	// Run 1: Cold (parses every file, populates .phantom/index.json)
	fmt.Println("Running Query (Run 1 - Cold)...")
	startList := time.Now()
	res, err := service.Query(ctx, phantom.Query{})
	if err != nil {
		panic(err)
	}
	duration := time.Since(startList)
	fmt.Printf("Run 1 Result: %v (Items: %d)\n", duration, len(res.Entries))

	// Run 2: Warm. Re-instantiate to simulate a new CLI command run so
	// only the persistent cache counts, not in-memory state.
	service2, _ := phantom.New(benchDir,
		phantom.WithLogger(logger),
		phantom.WithMustExist(true),
	)

	fmt.Println("Running Query (Run 2 - Warm)...")
	startList2 := time.Now()
	res2, err := service2.Query(ctx, phantom.Query{})
	if err != nil {
		panic(err)
	}
	duration2 := time.Since(startList2)
	fmt.Printf("Run 2 Result: %v (Items: %d)\n", duration2, len(res2.Entries))

	fmt.Printf("--------------------------------------------------\n")
	fmt.Printf("Benchmark Result (%d entries):\n", *count)
	fmt.Printf("  Cold: %v\n", duration)
	fmt.Printf("  Warm: %v\n", duration2)
	fmt.Printf("--------------------------------------------------\n")
}
