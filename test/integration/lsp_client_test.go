package integration_test

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

var (
	buildOnce   sync.Once
	binaryPath  string
	buildOutput []byte
	buildErr    error
)

// serverBinary builds cmd/less-language-server once per test run
func serverBinary(t *testing.T) string {
	t.Helper()
	buildOnce.Do(func() {
		cwd, err := os.Getwd()
		if err != nil {
			buildErr = err
			return
		}
		dir, err := os.MkdirTemp("", "lessls-integration")
		if err != nil {
			buildErr = err
			return
		}
		binaryPath = filepath.Join(dir, "less-language-server")
		cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/less-language-server")
		cmd.Dir = filepath.Join(cwd, "..", "..")
		buildOutput, buildErr = cmd.CombinedOutput()
	})
	require.NoError(t, buildErr, "failed to build server: %s", buildOutput)
	return binaryPath
}

type notification struct {
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
}

// LSPClient talks JSON-RPC to a server process over its stdio
type LSPClient struct {
	t      *testing.T
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	reader *bufio.Reader

	writeMu       sync.Mutex
	mu            sync.Mutex
	msgID         int
	responses     map[int]chan json.RawMessage
	notifications chan notification
	serverCalls   []string
}

// NewLSPClient starts the server and returns a client connected to it.
// The server is shut down when the test ends.
func NewLSPClient(t *testing.T) *LSPClient {
	t.Helper()
	if testing.Short() {
		t.Skip("integration tests build the server binary")
	}

	serverCmd := exec.Command(serverBinary(t), "--stdio", "--log-level", "debug")
	stdin, err := serverCmd.StdinPipe()
	require.NoError(t, err)
	stdout, err := serverCmd.StdoutPipe()
	require.NoError(t, err)
	stderr, err := serverCmd.StderrPipe()
	require.NoError(t, err)
	require.NoError(t, serverCmd.Start())

	go func() {
		scanner := bufio.NewScanner(stderr)
		for scanner.Scan() {
			t.Logf("[SERVER] %s", scanner.Text())
		}
	}()

	c := &LSPClient{
		t:             t,
		cmd:           serverCmd,
		stdin:         stdin,
		reader:        bufio.NewReader(stdout),
		responses:     make(map[int]chan json.RawMessage),
		notifications: make(chan notification, 64),
	}
	go c.readMessages()

	t.Cleanup(c.Close)
	return c
}

// Close shuts the server down and waits for it to exit
func (c *LSPClient) Close() {
	id := c.sendRequest("shutdown", nil)
	_, _ = c.waitForResponse(id, 2*time.Second)
	c.sendNotification("exit", nil)
	_ = c.stdin.Close()

	done := make(chan struct{})
	go func() {
		_ = c.cmd.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		_ = c.cmd.Process.Kill()
	}
}

func (c *LSPClient) sendRequest(method string, params any) int {
	c.mu.Lock()
	c.msgID++
	id := c.msgID
	c.responses[id] = make(chan json.RawMessage, 1)
	c.mu.Unlock()

	c.sendMessage(map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"method":  method,
		"params":  params,
	})
	return id
}

func (c *LSPClient) sendNotification(method string, params any) {
	c.sendMessage(map[string]any{
		"jsonrpc": "2.0",
		"method":  method,
		"params":  params,
	})
}

func (c *LSPClient) sendMessage(msg any) {
	data, err := json.Marshal(msg)
	if err != nil {
		c.t.Errorf("marshal message: %v", err)
		return
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if _, err := fmt.Fprintf(c.stdin, "Content-Length: %d\r\n\r\n%s", len(data), data); err != nil {
		c.t.Logf("write failed: %v", err)
	}
}

func (c *LSPClient) waitForResponse(id int, timeout time.Duration) (json.RawMessage, error) {
	c.mu.Lock()
	ch, ok := c.responses[id]
	c.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("no response channel for message ID %d", id)
	}

	select {
	case response := <-ch:
		return response, nil
	case <-time.After(timeout):
		return nil, fmt.Errorf("timeout waiting for response to message %d", id)
	}
}

// readMessages routes responses to their waiters, answers server requests
// with a null result and queues notifications
func (c *LSPClient) readMessages() {
	for {
		var contentLength int
		for {
			line, err := c.reader.ReadString('\n')
			if err != nil {
				return
			}
			if line == "\r\n" {
				break
			}
			_, _ = fmt.Sscanf(line, "Content-Length: %d", &contentLength)
		}

		content := make([]byte, contentLength)
		if _, err := io.ReadFull(c.reader, content); err != nil {
			return
		}

		var message struct {
			ID     *int            `json:"id"`
			Method *string         `json:"method"`
			Params json.RawMessage `json:"params"`
			Result json.RawMessage `json:"result"`
			Error  json.RawMessage `json:"error"`
		}
		if err := json.Unmarshal(content, &message); err != nil {
			continue
		}

		switch {
		case message.Method != nil && message.ID != nil:
			c.mu.Lock()
			c.serverCalls = append(c.serverCalls, *message.Method)
			c.mu.Unlock()
			id := *message.ID
			go c.sendMessage(map[string]any{"jsonrpc": "2.0", "id": id, "result": nil})

		case message.Method != nil:
			select {
			case c.notifications <- notification{*message.Method, message.Params}:
			default:
			}

		case message.ID != nil:
			c.mu.Lock()
			ch, ok := c.responses[*message.ID]
			c.mu.Unlock()
			if !ok {
				continue
			}
			if message.Error != nil {
				ch <- message.Error
			} else {
				ch <- message.Result
			}
		}
	}
}

// Request sends method and decodes the result into out
func (c *LSPClient) Request(method string, params any, out any) {
	c.t.Helper()
	id := c.sendRequest(method, params)
	raw, err := c.waitForResponse(id, 5*time.Second)
	require.NoError(c.t, err)
	if out != nil {
		require.NoError(c.t, json.Unmarshal(raw, out), "result: %s", raw)
	}
}

// Initialize runs the initialize handshake and returns the server
// capabilities. pull declares textDocument/diagnostic support.
func (c *LSPClient) Initialize(rootURI string, pull bool) map[string]json.RawMessage {
	c.t.Helper()
	textDocument := map[string]any{}
	if pull {
		textDocument["diagnostic"] = map[string]any{"dynamicRegistration": false}
	}

	var result struct {
		Capabilities map[string]json.RawMessage `json:"capabilities"`
	}
	c.Request("initialize", map[string]any{
		"rootUri": rootURI,
		"capabilities": map[string]any{
			"textDocument": textDocument,
			"workspace": map[string]any{
				"didChangeWatchedFiles": map[string]any{"dynamicRegistration": true},
			},
		},
	}, &result)

	c.sendNotification("initialized", map[string]any{})
	return result.Capabilities
}

func (c *LSPClient) DidOpen(uri, text string) {
	c.sendNotification("textDocument/didOpen", map[string]any{
		"textDocument": map[string]any{
			"uri":        uri,
			"languageId": "less",
			"version":    1,
			"text":       text,
		},
	})
}

func (c *LSPClient) DidChange(uri, text string, version int) {
	c.sendNotification("textDocument/didChange", map[string]any{
		"textDocument":   map[string]any{"uri": uri, "version": version},
		"contentChanges": []map[string]any{{"text": text}},
	})
}

func (c *LSPClient) DidChangeConfiguration(settings map[string]any) {
	c.sendNotification("workspace/didChangeConfiguration", map[string]any{"settings": settings})
}

// WaitForDiagnostics returns the next diagnostics published for uri
func (c *LSPClient) WaitForDiagnostics(uri string) []protocol.Diagnostic {
	c.t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case n := <-c.notifications:
			if n.Method != protocol.ServerTextDocumentPublishDiagnostics {
				continue
			}
			var params protocol.PublishDiagnosticsParams
			require.NoError(c.t, json.Unmarshal(n.Params, &params))
			if params.URI == uri {
				return params.Diagnostics
			}
		case <-timeout:
			require.FailNow(c.t, "no diagnostics published for "+uri)
			return nil
		}
	}
}

// ServerCalls returns the methods of the requests the server sent us
func (c *LSPClient) ServerCalls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.serverCalls...)
}
