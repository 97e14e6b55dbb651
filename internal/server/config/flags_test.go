package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{"cmd",
			"-a", "127.0.0.1:8080", "-g", ":6000", "-d", "db", "-s", "secret", "-t", "24h", "-dev",
			"-o", "https://a.example, https://b.example", "-l", "debug",
			"-b", "bucket", "-r", "eu-west-1", "-e", "http://minio:9000", "-otlp", "http://otel:4318",
		}, expected: &Config{
			HTTPAddr:       "127.0.0.1:8080",
			GRPCAddr:       ":6000",
			DatabaseDSN:    "db",
			SecretKey:      "secret",
			TokenValidity:  24 * time.Hour,
			DevMode:        true,
			AllowedOrigins: []string{"https://a.example", "https://b.example"},
			LogLevel:       "debug",
			S3Bucket:       "bucket",
			S3Region:       "eu-west-1",
			S3BaseEndpoint: "http://minio:9000",
			OTLPEndpoint:   "http://otel:4318",
		}},
		{name: "unknown flags ignored", args: []string{"cmd", "-x", "1", "-a", ":9999"},
			expected: &Config{HTTPAddr: ":9999"}},
		{name: "bad duration", args: []string{"cmd", "-t", "forever"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(tt.expected, config))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
