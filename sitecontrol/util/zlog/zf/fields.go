// Package zf provides zerolog field name constants for consistent logging.
//
// Using constants ensures typos are caught at compile time and enables
// easy refactoring. Import as:
//
//	import "github.com/lyralogics/lyrasite/sitecontrol/util/zlog/zf"
//
// Usage:
//
//	log.Info().Str(zf.RouteName, name).Str(zf.Path, path).Msg("...")
package zf

// Request fields.
const (
	RequestID  = "request.id"
	Method     = "method"
	Path       = "path"
	RouteName  = "route.name"
	Status     = "status"
	Duration   = "duration"
	RemoteAddr = "remote_addr"
	Bytes      = "bytes"
)

// Rendering fields.
const (
	Fragment     = "fragment"
	CurrentRoute = "current_route"
	AssetPath    = "asset.path"
	CacheHit     = "cache.hit"
)

// Configuration fields.
const (
	ConfigFile = "config.file"
	ListenAddr = "listen_addr"
	MenuPath   = "menu.path"
	AssetsRoot = "assets.root"
	Signal     = "signal"
)

// Component field for sub-loggers.
const (
	Component = "component"
)

// Debug environment variable fields.
const (
	DebugDeadlock         = "LYRASITE_DEBUG_DEADLOCK"
	DebugProfilingEnabled = "LYRASITE_PROFILING_ENABLED"
	DebugProfilingPath    = "LYRASITE_PROFILING_PATH"
)
