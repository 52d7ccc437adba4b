package core

import (
	"github.com/repin-dev/repin/client"
)

// Type aliases so source implementations only import core.
type (
	Client         = client.Client
	Option         = client.Option
	URLBuilder     = client.URLBuilder
	BaseURLs       = client.BaseURLs
	HTTPError      = client.HTTPError
	RateLimitError = client.RateLimitError
)

// Function aliases so source implementations only import core.
var (
	DefaultClient  = client.DefaultClient
	NewClient      = client.NewClient
	WithTimeout    = client.WithTimeout
	WithMaxRetries = client.WithMaxRetries
	BuildURLs      = client.BuildURLs
)
