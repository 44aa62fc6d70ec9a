package types

import "time"

const (
	HTTPReadTimeout     = 30 * time.Second
	HTTPWriteTimeout    = 30 * time.Second
	HTTPShutdownTimeout = 3 * time.Second

	JSONLogFormat = "json"
	TextLogFormat = "text"

	DefaultAssetMaxAge = 7 * 24 * time.Hour
)
