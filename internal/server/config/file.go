package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/petswap/internal/flagx"
	"github.com/dmitrijs2005/petswap/internal/timex"
)

// FileConfig is the on-disk shape of the server configuration. It is used
// only for decoding; set values are copied into Config. Durations accept
// strings like "168h" or integer nanoseconds.
type FileConfig struct {
	HTTPAddr            string         `json:"http_addr" yaml:"http_addr"`
	GRPCAddr            string         `json:"grpc_addr" yaml:"grpc_addr"`
	DatabaseDSN         string         `json:"database_dsn" yaml:"database_dsn"`
	SecretKey           string         `json:"secret_key" yaml:"secret_key"`
	TokenValidity       timex.Duration `json:"token_validity" yaml:"token_validity"`
	DevMode             *bool          `json:"dev_mode" yaml:"dev_mode"`
	AllowedOrigins      []string       `json:"allowed_origins" yaml:"allowed_origins"`
	LogLevel            string         `json:"log_level" yaml:"log_level"`
	RequestTimeout      timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	HealthProbeInterval timex.Duration `json:"health_probe_interval" yaml:"health_probe_interval"`
	S3AccessKey         string         `json:"s3_access_key" yaml:"s3_access_key"`
	S3SecretKey         string         `json:"s3_secret_key" yaml:"s3_secret_key"`
	S3Bucket            string         `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region            string         `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint      string         `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	S3PresignExpiry     timex.Duration `json:"s3_presign_expiry" yaml:"s3_presign_expiry"`
	OTLPEndpoint        string         `json:"otlp_endpoint" yaml:"otlp_endpoint"`
}

// parseFile overlays Config with values from the file named by the -c or
// -config flag. Files ending in .yaml or .yml are decoded as YAML, anything
// else as JSON. Keys absent from the file keep their current value.
// Unreadable or malformed files cause a panic.
func parseFile(config *Config) {
	path := flagx.ConfigFileFlag()

	// nothing to load
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &FileConfig{}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	default:
		err = json.Unmarshal(data, c)
	}
	if err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *FileConfig) apply(config *Config) {
	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.GRPCAddr, c.GRPCAddr)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.S3AccessKey, c.S3AccessKey)
	setString(&config.S3SecretKey, c.S3SecretKey)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.OTLPEndpoint, c.OTLPEndpoint)

	if c.TokenValidity.Duration > 0 {
		config.TokenValidity = c.TokenValidity.Duration
	}
	if c.RequestTimeout.Duration > 0 {
		config.RequestTimeout = c.RequestTimeout.Duration
	}
	if c.HealthProbeInterval.Duration > 0 {
		config.HealthProbeInterval = c.HealthProbeInterval.Duration
	}
	if c.S3PresignExpiry.Duration > 0 {
		config.S3PresignExpiry = c.S3PresignExpiry.Duration
	}
	if c.DevMode != nil {
		config.DevMode = *c.DevMode
	}
	if len(c.AllowedOrigins) > 0 {
		config.AllowedOrigins = c.AllowedOrigins
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
