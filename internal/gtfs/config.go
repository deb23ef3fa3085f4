package gtfs

import "strings"

// Config says where a static GTFS feed is read from.
type Config struct {
	// Source is a local path or an http(s) URL of a GTFS zip archive.
	Source                string
	StaticAuthHeaderKey   string
	StaticAuthHeaderValue string
}

func (config Config) isLocalFile() bool {
	return !strings.HasPrefix(config.Source, "http://") && !strings.HasPrefix(config.Source, "https://")
}
