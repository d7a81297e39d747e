package main

import (
	"context"
	"log/slog"
	"testing"

	"loan-amortizer/config"
	"loan-amortizer/domain"
	"loan-amortizer/repository"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"unknown": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestCurveSources(t *testing.T) {
	cfg := config.Defaults()
	if got := curveSources(&cfg); len(got) != 0 {
		t.Errorf("expected no sources by default, got %v", got)
	}

	cfg.Curves.ThreeMonth = "data/3m.csv"
	got := curveSources(&cfg)
	if len(got) != 1 || got[domain.ThreeMonthTerm] != "data/3m.csv" {
		t.Errorf("unexpected sources %v", got)
	}
}

func TestNewCache_Memory(t *testing.T) {
	cfg := config.Defaults()

	cache, closeCache, err := newCache(context.Background(), &cfg, slog.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer closeCache()

	if _, ok := cache.(*repository.MemoryCache); !ok {
		t.Errorf("expected memory cache, got %T", cache)
	}
}

func TestNewCache_RedisUnreachable(t *testing.T) {
	cfg := config.Defaults()
	cfg.Cache.Backend = "redis"
	cfg.Redis.Addr = "127.0.0.1:1"
	cfg.Redis.MaxRetries = -1

	if _, _, err := newCache(context.Background(), &cfg, slog.Default()); err == nil {
		t.Fatalf("expected error for unreachable redis")
	}
}
