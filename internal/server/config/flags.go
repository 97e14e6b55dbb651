package config

import (
	"flag"
	"os"
	"strings"

	"github.com/dmitrijs2005/petswap/internal/flagx"
)

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string     HTTP bind address (e.g., ":10000")
//	-g string     gRPC health bind address
//	-d string     PostgreSQL DSN
//	-s string     JWT HMAC secret key
//	-t duration   token validity (e.g., "168h")
//	-dev          development mode
//	-o string     comma-separated extra CORS origins
//	-l string     log level
//	-b string     S3 bucket name
//	-r string     S3 region
//	-e string     S3 base endpoint
//	-otlp string  OTLP/HTTP trace endpoint
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-d", "-s", "-t", "-dev", "-o", "-l", "-b", "-r", "-e", "-otlp"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run the HTTP API")
	fs.StringVar(&config.GRPCAddr, "g", config.GRPCAddr, "address and port to run the gRPC health service")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.DurationVar(&config.TokenValidity, "t", config.TokenValidity, "token validity duration")
	fs.BoolVar(&config.DevMode, "dev", config.DevMode, "development mode")
	origins := fs.String("o", strings.Join(config.AllowedOrigins, ","), "extra CORS origins, comma separated")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "r", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.OTLPEndpoint, "otlp", config.OTLPEndpoint, "OTLP/HTTP trace endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AllowedOrigins = splitList(*origins)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
