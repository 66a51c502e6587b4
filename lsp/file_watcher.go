package lsp

import (
	"path/filepath"

	"bennypowers.dev/lessls/internal/log"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// FileWatcherID identifies the didChangeWatchedFiles registration
const FileWatcherID = "less-file-watcher"

// FileWatchers returns the glob patterns the client is asked to watch:
// the include patterns and the configuration files, under the workspace
// root
func (s *Server) FileWatchers() []protocol.FileSystemWatcher {
	root := s.RootPath()
	if root == "" {
		return nil
	}
	rootPattern := filepath.ToSlash(filepath.Clean(root))

	var watchers []protocol.FileSystemWatcher
	for _, pattern := range s.GetConfig().Include {
		watchers = append(watchers, protocol.FileSystemWatcher{GlobPattern: rootPattern + "/" + pattern})
	}
	for _, name := range ConfigFiles {
		watchers = append(watchers, protocol.FileSystemWatcher{GlobPattern: rootPattern + "/" + filepath.ToSlash(name)})
	}
	return watchers
}

// RegisterFileWatchers asks the client to send workspace/didChangeWatchedFiles
// for LESS and configuration files
func (s *Server) RegisterFileWatchers(context *glsp.Context) error {
	// tests run without a connection
	if context == nil || context.Call == nil {
		log.Info("Skipping file watcher registration (no client context)")
		return nil
	}

	watchers := s.FileWatchers()
	if len(watchers) == 0 {
		log.Info("No file watchers to register")
		return nil
	}

	params := protocol.RegistrationParams{
		Registrations: []protocol.Registration{
			{
				ID:     FileWatcherID,
				Method: "workspace/didChangeWatchedFiles",
				RegisterOptions: protocol.DidChangeWatchedFilesRegistrationOptions{
					Watchers: watchers,
				},
			},
		},
	}

	// client/registerCapability is a request. Calling it synchronously
	// would block the message loop that has to read the response.
	go func(ctx *glsp.Context) {
		var result any
		ctx.Call("client/registerCapability", params, &result)
		log.Info("File watcher registration completed")
	}(context)

	log.Info("Sent file watcher registration request (%d watchers)", len(watchers))
	return nil
}
