package config

import (
	"github.com/spf13/viper"
)

// Version of the rewind tool, reported by the CLI and the MCP server.
const Version = "1.0.0"

// On-disk layout of the history store, relative to the project root.
const (
	HistoryDir    = ".rewind"
	InitialBackup = "initial_backup.zip"
	FileHashes    = "file_hashes.json"
	MetadataFile  = "metadata.json"
	StatesDir     = "states"
)

// IgnorePatterns is the fixed ignore list. Wildcards match across path
// separators, so ".git/*" covers everything under .git. The history store
// ignores itself.
var IgnorePatterns = []string{
	".git/*",
	"node_modules/*",
	"__pycache__/*",
	"*.pyc",
	".env",
	".DS_Store",
	"*.log",
	HistoryDir + "/*",
}

// SetDefaults registers configuration defaults with viper. Called once
// during CLI bootstrap, before any config file is read.
func SetDefaults() {
	viper.SetDefault("cleanup.keep_last_n", 10)
	viper.SetDefault("serve.http_addr", ":8000")
	viper.SetDefault("log.debug", false)
}

// KeepLastN returns the default number of states cleanup retains.
func KeepLastN() int {
	return viper.GetInt("cleanup.keep_last_n")
}

// HTTPAddr returns the listen address for the HTTP transport.
func HTTPAddr() string {
	return viper.GetString("serve.http_addr")
}

// DebugLogging reports whether debug logging is enabled.
func DebugLogging() bool {
	return viper.GetBool("log.debug")
}
