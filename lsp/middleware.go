package lsp

import (
	"fmt"
	"runtime/debug"

	"bennypowers.dev/lessls/internal/log"
	"bennypowers.dev/lessls/lsp/methods/workspace"
	"bennypowers.dev/lessls/lsp/types"
	"github.com/tliron/glsp"
)

// method wraps a request handler with panic recovery, logging and error
// wrapping. It returns the plain function type the protocol.Handler
// fields expect.
func method[P, R any](
	s types.ServerContext,
	methodName string,
	handler func(*types.RequestContext, P) (R, error),
) func(*glsp.Context, P) (R, error) {
	return func(ctx *glsp.Context, params P) (result R, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = recovered(ctx, methodName, r)
				var zero R
				result = zero
			}
		}()

		log.Debug("%s started", methodName)
		req := types.NewRequestContext(s, ctx)
		result, err = handler(req, params)
		return result, finish(req, methodName, err)
	}
}

// notify wraps a notification handler
func notify[P any](
	s types.ServerContext,
	methodName string,
	handler func(*types.RequestContext, P) error,
) func(*glsp.Context, P) error {
	return func(ctx *glsp.Context, params P) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = recovered(ctx, methodName, r)
			}
		}()

		log.Debug("%s started", methodName)
		req := types.NewRequestContext(s, ctx)
		return finish(req, methodName, handler(req, params))
	}
}

// noParam wraps a handler without params, such as shutdown
func noParam(
	s types.ServerContext,
	methodName string,
	handler func(*types.RequestContext) error,
) func(*glsp.Context) error {
	return func(ctx *glsp.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = recovered(ctx, methodName, r)
			}
		}()

		log.Debug("%s started", methodName)
		req := types.NewRequestContext(s, ctx)
		return finish(req, methodName, handler(req))
	}
}

func recovered(ctx *glsp.Context, methodName string, r any) error {
	log.Error("PANIC in %s: %v\nStack trace:\n%s", methodName, r, debug.Stack())
	workspace.LogError(ctx, "Internal error in %s: %v", methodName, r)
	return fmt.Errorf("internal error in %s", methodName)
}

// finish logs the outcome of a handler. Warnings are only reported when
// the handler succeeded.
func finish(req *types.RequestContext, methodName string, err error) error {
	if err != nil {
		workspace.LogError(req.GLSP, "%s: %v", methodName, err)
		return fmt.Errorf("%s: %w", methodName, err)
	}
	for _, w := range req.Warnings() {
		workspace.LogWarning(req.GLSP, "%s: %v", methodName, w)
	}
	log.Debug("%s completed successfully", methodName)
	return nil
}
