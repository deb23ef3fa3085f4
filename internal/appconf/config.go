// Package appconf holds the runtime configuration of the API server and its
// loader for JSON and YAML config files.
package appconf

// Config is the server configuration after flags and config files are merged.
type Config struct {
	Port      int
	Env       Environment
	ApiKeys   []string
	Verbose   bool
	RateLimit int // requests per second per API key
	LogLevel  string
	LogFormat string
	LogFile   string
}

// DataConfig says where the network comes from and how to route over it.
type DataConfig struct {
	// Path is a JSON batch document, a text batch or a GTFS zip (local path or URL).
	Path   string
	Format DataFormat
	// BusWaitTime and BusVelocity override the routing settings of the source
	// when set.
	BusWaitTime    *int
	BusVelocity    *float64
	RouteCacheSize int
	// AuthHeaderKey and AuthHeaderValue are sent when Path is a GTFS URL.
	AuthHeaderKey   string
	AuthHeaderValue string
}

type DataFormat string

const (
	FormatJSON DataFormat = "json"
	FormatText DataFormat = "text"
	FormatGTFS DataFormat = "gtfs"
)
