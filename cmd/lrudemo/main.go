// Command lrudemo exercises an lru.Cache from concurrent writer and reader
// goroutines and logs what the readers find.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/mshivasai/lru"
)

// keyStride separates the key ranges of different goroutine ids.
const keyStride = 100

type config struct {
	Capacity int
	Writers  int
	Readers  int
	Ops      int
}

var errBadConfig = errors.New("invalid configuration")

func parseConfig(args []string, out io.Writer) (config, error) {
	var cfg config

	fs := flag.NewFlagSet("lrudemo", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.IntVar(&cfg.Capacity, "capacity", 10, "maximum number of cached entries")
	fs.IntVar(&cfg.Writers, "writers", 3, "number of writer goroutines")
	fs.IntVar(&cfg.Readers, "readers", 3, "number of reader goroutines")
	fs.IntVar(&cfg.Ops, "ops", 10, "keys written or read per goroutine")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	switch {
	case cfg.Writers < 0, cfg.Readers < 0:
		return config{}, fmt.Errorf("%w: goroutine counts must not be negative", errBadConfig)
	case cfg.Ops < 0 || cfg.Ops > keyStride:
		return config{}, fmt.Errorf("%w: ops must be between 0 and %d", errBadConfig, keyStride)
	}
	return cfg, nil
}

func key(id, i int) int {
	return id*keyStride + i
}

func value(id, i int) string {
	return fmt.Sprintf("Value_%d_%d", id, i)
}

// run fills the cache from cfg.Writers goroutines, waits for them, then reads
// the same key ranges back from cfg.Readers goroutines. It returns the number
// of reads that hit.
func run(ctx context.Context, cfg config, logger *log.Logger) (int, error) {
	cache, err := lru.New[int, string](cfg.Capacity)
	if err != nil {
		return 0, err
	}

	writers, wctx := errgroup.WithContext(ctx)
	for id := 0; id < cfg.Writers; id++ {
		writers.Go(func() error {
			for i := 0; i < cfg.Ops; i++ {
				if err := wctx.Err(); err != nil {
					return err
				}
				cache.Put(key(id, i), value(id, i))
			}
			return nil
		})
	}
	if err := writers.Wait(); err != nil {
		return 0, err
	}
	logger.Printf("writers done: size=%d capacity=%d", cache.Len(), cache.Capacity())

	hits := make([]int, cfg.Readers)
	readers, rctx := errgroup.WithContext(ctx)
	for id := 0; id < cfg.Readers; id++ {
		readers.Go(func() error {
			for i := 0; i < cfg.Ops; i++ {
				if err := rctx.Err(); err != nil {
					return err
				}
				k := key(id, i)
				if v, ok := cache.Get(k); ok {
					logger.Printf("reader %d read: key=%d, value=%s", id, k, v)
					hits[id]++
				}
			}
			return nil
		})
	}
	if err := readers.Wait(); err != nil {
		return 0, err
	}

	total := 0
	for _, n := range hits {
		total += n
	}
	logger.Printf("readers done: hits=%d size=%d", total, cache.Len())
	return total, nil
}

func main() {
	logger := log.New(os.Stderr, "lrudemo: ", log.LstdFlags)

	cfg, err := parseConfig(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		logger.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Printf("starting: capacity=%d writers=%d readers=%d ops=%d",
		cfg.Capacity, cfg.Writers, cfg.Readers, cfg.Ops)

	if _, err := run(ctx, cfg, logger); err != nil {
		logger.Printf("run: %v", err)
		stop()
		os.Exit(1)
	}
}
