package utils

import "time"

// ReadEntry describes one segment range read: which segment, what span, which
// store to contact, and where the bytes land locally.
type ReadEntry struct {
	Segment  string `yaml:"segment"`
	Offset   int64  `yaml:"offset"`
	Length   int64  `yaml:"length"`
	Endpoint string `yaml:"endpoint"`
	File     string `yaml:"file"`
}

// Manifest is the YAML shape consumed by the batch command.
type Manifest struct {
	Reads []ReadEntry `yaml:"reads"`
}

type ClientConfig struct {
	KATimeout time.Duration
	UserAgent string
	Headers   map[string]string
}

const ToolUserAgent = "segctl/1.0"
