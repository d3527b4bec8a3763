package config

import (
	"flag"
	"os"
	"time"

	"github.com/Tao1925/poc-web/internal/flagx"
)

var valueFlags = []string{"a", "driver", "d", "l", "sync-timeout", "u", "p", "g", "e", "log-level", "log-file"}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string            gRPC bind address (e.g., ":50051")
//	-driver string       database driver: sqlite or pgx
//	-d string            database DSN
//	-sync bool           run the startup data sync (use -sync=false to disable)
//	-l string            data sync document location
//	-sync-timeout int    data sync deadline, seconds (0 = none)
//	-u string            S3 root user
//	-p string            S3 root password
//	-g string            S3 region
//	-e string            S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-log-level string    debug, info, warn or error
//	-log-file string     rotated log file path
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], valueFlags, "sync")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.DatabaseDriver, "driver", config.DatabaseDriver, "database driver (sqlite or pgx)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.BoolVar(&config.DataSyncEnabled, "sync", config.DataSyncEnabled, "run data sync at startup")
	fs.StringVar(&config.DataSyncLocation, "l", config.DataSyncLocation, "data sync document location")

	syncTimeout := fs.Int("sync-timeout", int(config.DataSyncTimeout.Seconds()), "data sync timeout (in seconds, 0 = none)")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.LogLevel, "log-level", config.LogLevel, "log level")
	fs.StringVar(&config.LogFile, "log-file", config.LogFile, "log file")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.DataSyncTimeout = time.Duration(*syncTimeout) * time.Second
}
