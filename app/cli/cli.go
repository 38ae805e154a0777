package cli

import (
	"log/slog"

	"github.com/alecthomas/kong"
)

// CLI is the command line interface of hexo.
type CLI struct {
	Set    Set    `kong:"cmd,help='Set the value of a key.'"`
	Get    Get    `kong:"cmd,help='Get the value of a key.'"`
	Rm     Rm     `kong:"cmd,help='Delete a key.'"`
	Exists Exists `kong:"cmd,help='Report whether a key has a value.'"`
	Ls     Ls     `kong:"cmd,help='List entries, optionally filtered by key prefix.'"`
	Math   Math   `kong:"cmd,help='Apply an arithmetic operation to the value of a key.'"`
	Add    Add    `kong:"cmd,help='Add a number to the value of a key.'"`
	Sub    Sub    `kong:"cmd,help='Subtract a number from the value of a key.'"`
	Ping   Ping   `kong:"cmd,help='Measure the latency of the shard.'"`
	Serve  Serve  `kong:"cmd,help='Start a development shard server.'"`

	ShardURL string           `kong:"default='http://127.0.0.1:2020',help='Base URL of the shard.'"`
	LogLevel slog.Level       `kong:"default='info',help='Minimum level of logged messages: debug, info, warn or error.'"`
	Config   kong.ConfigFlag  `kong:"help='Path to a YAML configuration file.'"`
	Version  kong.VersionFlag `kong:"help='Print the version and exit.'"`
}
