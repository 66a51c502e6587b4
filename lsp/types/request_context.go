package types

import (
	"github.com/tliron/glsp"
)

// RequestContext carries the request-scoped state of one LSP method call:
// the server, the glsp connection context, and any non-fatal warnings the
// handler collected
type RequestContext struct {
	Server   ServerContext
	GLSP     *glsp.Context
	warnings []error
}

// NewRequestContext creates the context for one request or notification.
func NewRequestContext(server ServerContext, glsp *glsp.Context) *RequestContext {
	return &RequestContext{
		Server: server,
		GLSP:   glsp,
	}
}

// AddWarning records a non-fatal problem. The middleware logs warnings
// once the handler has returned successfully. nil is ignored.
func (r *RequestContext) AddWarning(err error) {
	if err != nil {
		r.warnings = append(r.warnings, err)
	}
}

// Warnings returns the warnings collected so far, or nil
func (r *RequestContext) Warnings() []error {
	return r.warnings
}

// HasWarnings reports whether the handler recorded any warnings.
func (r *RequestContext) HasWarnings() bool {
	return len(r.warnings) > 0
}
