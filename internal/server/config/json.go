package config

import (
	"encoding/json"
	"os"

	"github.com/Tao1925/poc-web/internal/flagx"
	"github.com/Tao1925/poc-web/internal/timex"
)

// JsonConfig is the on-disk shape of the optional config file. Pointer
// fields distinguish "absent" from a zero value so that a partial file only
// overrides what it names.
type JsonConfig struct {
	EndpointAddrGRPC *string         `json:"endpoint_addr_grpc"`
	DatabaseDriver   *string         `json:"database_driver"`
	DatabaseDSN      *string         `json:"database_dsn"`
	DataSyncEnabled  *bool           `json:"data_sync_enabled"`
	DataSyncLocation *string         `json:"data_sync_location"`
	DataSyncTimeout  *timex.Duration `json:"data_sync_timeout"`
	S3RootUser       *string         `json:"s3_root_user"`
	S3RootPassword   *string         `json:"s3_root_password"`
	S3Region         *string         `json:"s3_region"`
	S3BaseEndpoint   *string         `json:"s3_base_endpoint"`
	LogLevel         *string         `json:"log_level"`
	LogFile          *string         `json:"log_file"`
}

// parseJson loads the file named by -c/-config, if any, and overlays the
// fields it sets onto config. An unreadable file or invalid JSON panics:
// the process must not start on a half-understood configuration.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *JsonConfig) apply(config *Config) {
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDriver, c.DatabaseDriver)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	if c.DataSyncEnabled != nil {
		config.DataSyncEnabled = *c.DataSyncEnabled
	}
	setString(&config.DataSyncLocation, c.DataSyncLocation)
	if c.DataSyncTimeout != nil {
		config.DataSyncTimeout = c.DataSyncTimeout.Duration
	}
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.LogFile, c.LogFile)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
