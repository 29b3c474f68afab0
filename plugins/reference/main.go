// Command reference is a notifier plugin that appends every notification it
// receives to a JSON lines file. The file is named by FOCUSFLOW_NOTIFY_LOG;
// without it the plugin only logs to stderr.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	pluginrpc "focusflow/internal/modules/notify/adapter/out/rpc"
)

type server struct {
	mu     sync.Mutex
	path   string
	logger hclog.Logger
}

type entry struct {
	At time.Time `json:"at"`
	*pluginrpc.NotifyRequest
}

func (s *server) GetMetadata(_ context.Context, _ *pluginrpc.Empty) (*pluginrpc.Metadata, error) {
	return &pluginrpc.Metadata{
		Name:         "reference",
		Version:      "1.0.0",
		Capabilities: []string{"message", "status"},
	}, nil
}

func (s *server) Notify(_ context.Context, in *pluginrpc.NotifyRequest) (*pluginrpc.NotifyResponse, error) {
	if in.Event == "" {
		return &pluginrpc.NotifyResponse{Error: "event is required"}, nil
	}
	s.logger.Info("notification", "event", in.Event, "text", in.Text, "status", in.Status, "clear", in.ClearStatus)
	if s.path == "" {
		return &pluginrpc.NotifyResponse{Delivered: true}, nil
	}
	line, err := json.Marshal(entry{At: time.Now().UTC(), NotifyRequest: in})
	if err != nil {
		return nil, fmt.Errorf("encode entry: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return &pluginrpc.NotifyResponse{Error: err.Error()}, nil
	}
	defer f.Close()
	if _, err := f.Write(append(line, '\n')); err != nil {
		return &pluginrpc.NotifyResponse{Error: err.Error()}, nil
	}
	return &pluginrpc.NotifyResponse{Delivered: true}, nil
}

func main() {
	logger := hclog.New(&hclog.LoggerOptions{Name: "reference", Output: os.Stderr, JSONFormat: true})
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: pluginrpc.HandshakeConfig,
		Plugins:         pluginrpc.PluginMap(&server{path: os.Getenv("FOCUSFLOW_NOTIFY_LOG"), logger: logger}),
		GRPCServer:      plugin.DefaultGRPCServer,
		Logger:          logger,
	})
}
