package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.GRPCAddr != "0.0.0.0:50051" {
		t.Fatalf("GRPCAddr = %q, want %q", cfg.GRPCAddr, "0.0.0.0:50051")
	}
	if cfg.GRPCRequestTimeout != 10*time.Second {
		t.Fatalf("GRPCRequestTimeout = %s, want 10s", cfg.GRPCRequestTimeout)
	}
	if cfg.RedisAddr != "" || len(cfg.KafkaBrokers) != 0 {
		t.Fatalf("redis/kafka should be disabled by default: %q %v", cfg.RedisAddr, cfg.KafkaBrokers)
	}
	if cfg.RedisSettingsTTL != 5*time.Minute {
		t.Fatalf("RedisSettingsTTL = %s, want 5m", cfg.RedisSettingsTTL)
	}
	if cfg.KafkaTopicPrefix != "slotwise." {
		t.Fatalf("KafkaTopicPrefix = %q", cfg.KafkaTopicPrefix)
	}
	b := cfg.Business
	if b.OpenHour != 9 || b.CloseHour != 18 || b.StepMinutes != 30 || b.TimeZone != "UTC" {
		t.Fatalf("Business = %+v, want 9-18 every 30m in UTC", b)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SLOTWISE_GRPC_ADDR", "127.0.0.1:6000")
	t.Setenv("SLOTWISE_KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("SLOTWISE_REDIS_ADDR", "localhost:6379")
	t.Setenv("SLOTWISE_BUSINESS_OPEN_HOUR", "8")
	t.Setenv("SLOTWISE_BUSINESS_CLOSE_HOUR", "12")
	t.Setenv("SLOTWISE_BUSINESS_STEP_MINUTES", "15")
	t.Setenv("SLOTWISE_BUSINESS_TIME_ZONE", "America/New_York")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.GRPCHost != "127.0.0.1" || cfg.GRPCPort != 6000 || cfg.GRPCAddr != "127.0.0.1:6000" {
		t.Fatalf("grpc = %s %d %s", cfg.GRPCHost, cfg.GRPCPort, cfg.GRPCAddr)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[0] != "k1:9092" || cfg.KafkaBrokers[1] != "k2:9092" {
		t.Fatalf("KafkaBrokers = %v", cfg.KafkaBrokers)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Fatalf("RedisAddr = %q", cfg.RedisAddr)
	}
	b := cfg.Business
	if b.OpenHour != 8 || b.CloseHour != 12 || b.StepMinutes != 15 || b.TimeZone != "America/New_York" {
		t.Fatalf("Business = %+v", b)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name string
		key  string
		val  string
	}{
		{"bad duration", "SLOTWISE_SHUTDOWN_TIMEOUT", "soon"},
		{"bad ttl", "SLOTWISE_REDIS_SETTINGS_TTL", "-"},
		{"inverted hours", "SLOTWISE_BUSINESS_OPEN_HOUR", "20"},
		{"zero step", "SLOTWISE_BUSINESS_STEP_MINUTES", "0"},
		{"unknown zone", "SLOTWISE_BUSINESS_TIME_ZONE", "Mars/Olympus"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.val)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", tc.key, tc.val)
			}
		})
	}
}
