// Copyright (C) 2026, Lux Partners Limited. All rights reserved.
// See the file LICENSE for licensing terms.

// Command lrudemo walks through the LRU cache, token bucket and trie
// autocomplete, logging each step.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/luxfi/metric"
	"github.com/phuslu/log"

	"github.com/luxfi/lrucache/lru"
	"github.com/luxfi/lrucache/metercacher"
	"github.com/luxfi/lrucache/ratelimit"
	"github.com/luxfi/lrucache/trie"
)

type config struct {
	demo     string
	capacity int
	level    string
}

func parseFlags(args []string) (config, error) {
	var cfg config
	fs := flag.NewFlagSet("lrudemo", flag.ContinueOnError)
	fs.StringVar(&cfg.demo, "demo", "all", "demo to run: lru, tokenbucket, trie or all")
	fs.IntVar(&cfg.capacity, "capacity", 2, "LRU cache capacity")
	fs.StringVar(&cfg.level, "log-level", "info", "log level")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newLogger(level string) *log.Logger {
	return &log.Logger{
		Level:  log.ParseLevel(level),
		Caller: 0,
		Writer: &log.ConsoleWriter{
			ColorOutput:    false,
			EndWithMessage: true,
		},
	}
}

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	logger := newLogger(cfg.level)
	if err := run(cfg, logger); err != nil {
		logger.Error().Err(err).Msg("demo failed")
		os.Exit(1)
	}
}

func run(cfg config, logger *log.Logger) error {
	demos := map[string]func(config, *log.Logger) error{
		"lru":         runLRU,
		"tokenbucket": runTokenBucket,
		"trie":        runTrie,
	}
	if cfg.demo == "all" {
		for _, name := range []string{"lru", "tokenbucket", "trie"} {
			if err := demos[name](cfg, logger); err != nil {
				return err
			}
		}
		return nil
	}
	demo, ok := demos[cfg.demo]
	if !ok {
		return fmt.Errorf("unknown demo %q", cfg.demo)
	}
	return demo(cfg, logger)
}

func runLRU(cfg config, logger *log.Logger) error {
	logger.Info().Int("capacity", cfg.capacity).Msg("LRU cache demo")

	inner, err := lru.New[string, int](cfg.capacity, lru.WithOnEvict(func(key string, _ int) {
		logger.Info().Str("key", key).Msg("evicted")
	}))
	if err != nil {
		return err
	}
	registry := metric.NewRegistry()
	cache, err := metercacher.New[string, int]("lrudemo", registry, inner)
	if err != nil {
		return err
	}

	cache.Put("A", 1)
	cache.Put("B", 2)
	logger.Info().Strs("order", inner.Keys()).Msg("put A, put B")

	lookup := func(key string) {
		if v, ok := cache.Get(key); ok {
			logger.Info().Str("key", key).Int("value", v).Strs("order", inner.Keys()).Msg("hit")
			return
		}
		logger.Info().Str("key", key).Msg("miss")
	}

	lookup("A")
	cache.Put("C", 3)
	lookup("B")
	lookup("C")
	lookup("A")

	families, err := registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var value float64
			switch {
			case m.GetCounter() != nil:
				value = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				value = m.GetGauge().GetValue()
			}
			labels := make([]string, 0, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				labels = append(labels, l.GetName()+"="+l.GetValue())
			}
			logger.Debug().Str("metric", mf.GetName()).Str("labels", strings.Join(labels, ",")).Float64("value", value).Msg("metric")
		}
	}
	return nil
}

// virtualClock lets the token bucket demo skip real sleeps.
type virtualClock struct {
	now time.Time
}

func (c *virtualClock) Now() time.Time { return c.now }

func (c *virtualClock) Sleep(d time.Duration) { c.now = c.now.Add(d) }

func runTokenBucket(_ config, logger *log.Logger) error {
	logger.Info().Msg("token bucket demo")

	clock := &virtualClock{now: time.Now()}
	bucket, err := ratelimit.NewTokenBucket(5, 1, ratelimit.WithClock(clock.Now))
	if err != nil {
		return err
	}

	request := func(n int) {
		if bucket.Allow() {
			logger.Info().Int("request", n).Msg("allowed")
		} else {
			logger.Info().Int("request", n).Msg("rate limited")
		}
	}
	for i := 1; i <= 6; i++ {
		request(i)
	}
	clock.Sleep(2 * time.Second)
	logger.Info().Float64("tokens", bucket.Tokens()).Msg("waited 2s")
	request(7)
	return nil
}

func runTrie(_ config, logger *log.Logger) error {
	logger.Info().Msg("trie autocomplete demo")

	ac, err := trie.NewAutocompleter(trie.DefaultLimit, 16)
	if err != nil {
		return err
	}
	for _, w := range []string{"car", "cat", "cart", "cake", "carbon", "hello", "help"} {
		ac.Insert(w)
	}
	for _, query := range []string{"ca", "hel", "ca"} {
		logger.Info().Str("query", query).Strs("suggestions", ac.Suggest(query)).Int("memoized", ac.Memoized()).Msg("suggest")
	}
	return nil
}
