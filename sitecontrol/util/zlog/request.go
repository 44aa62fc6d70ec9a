// Package zlog provides zerolog utilities for safe and consistent logging.
//
// For field name constants, use the zf subpackage:
//
//	import "github.com/lyralogics/lyrasite/sitecontrol/util/zlog/zf"
//
// The wrapper types in this package leave out data that should not end up in
// logs, such as query strings and cookies.
package zlog

import (
	"net/http"

	"github.com/lyralogics/lyrasite/sitecontrol/util/zlog/zf"
	"github.com/rs/zerolog"
)

// SafeRequest wraps an http.Request for safe logging.
//
// Only the method, path and remote address are logged. The query string,
// headers and body are not.
type SafeRequest struct {
	req *http.Request
}

// Request creates a SafeRequest wrapper for safe logging.
func Request(req *http.Request) SafeRequest {
	return SafeRequest{req: req}
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler.
func (s SafeRequest) MarshalZerologObject(e *zerolog.Event) {
	if s.req == nil {
		return
	}

	e.Str(zf.Method, s.req.Method)
	if s.req.URL != nil {
		e.Str(zf.Path, s.req.URL.Path)
	}
	if s.req.RemoteAddr != "" {
		e.Str(zf.RemoteAddr, s.req.RemoteAddr)
	}
}
