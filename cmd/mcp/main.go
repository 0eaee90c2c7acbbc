// The mcp command exposes the layout engine over the Model Context Protocol
// on stdio. Only protocol JSON goes to stdout; logs go to stderr.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"

	"github.com/slideforge/layout-engine/internal/analyzer"
	"github.com/slideforge/layout-engine/internal/catalog"
	"github.com/slideforge/layout-engine/internal/config"
	"github.com/slideforge/layout-engine/internal/logging"
	"github.com/slideforge/layout-engine/internal/mcp"
	"github.com/slideforge/layout-engine/internal/recommender"
	"github.com/slideforge/layout-engine/internal/telemetry"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "layout-engine-mcp: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := config.GetConfigPath("configs/config.yml")
	cfg, err := config.LoadWithDefaults(cfgPath, config.SetDefaults)
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
		OutputPaths: []string{"stderr"},
	})
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer logger.Sync()

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return err
	}
	store := catalog.NewStore(cat)

	vocab := analyzer.DefaultVocabulary()
	if cfg.Vocabulary.Path != "" {
		vocab, err = analyzer.LoadVocabulary(cfg.Vocabulary.Path)
		if err != nil {
			return err
		}
	}
	an := analyzer.New(vocab, logger)

	rec := recommender.New(an, store, nil, telemetry.NewProvider(), logger)
	server := mcp.NewServer(rec, store, logger, cfg.Service.Name, cfg.Service.Version)

	logger.Info("MCP server ready",
		logging.String("service", cfg.Service.Name),
		logging.Int("layouts", cat.Len()),
	)

	return serve(server, os.Stdin, os.Stdout, logger)
}

// serve runs the stdio request loop. Responses are compact JSON, one per
// line; notifications get no response.
func serve(server *mcp.Server, in io.Reader, out io.Writer, logger logging.Logger) error {
	decoder := json.NewDecoder(bufio.NewReader(in))
	encoder := json.NewEncoder(out)

	for {
		var request mcp.Request
		if err := decoder.Decode(&request); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			// The request id is unrecoverable from a malformed frame, and
			// the decoder cannot resynchronize mid-stream.
			sendError(encoder, 0, mcp.ParseError, "Failed to parse request", logger)
			return fmt.Errorf("decode request: %w", err)
		}

		response := server.HandleRequest(&request)
		if response == nil || request.ID == nil {
			continue
		}

		if err := encoder.Encode(response); err != nil {
			logger.Error("failed to encode response", logging.Error(err))
		}
	}
}

func sendError(encoder *json.Encoder, id any, code int, message string, logger logging.Logger) {
	response := mcp.Response{
		JSONRPC: "2.0",
		ID:      id,
		Error: &mcp.ErrorObject{
			Code:    code,
			Message: message,
		},
	}
	if err := encoder.Encode(&response); err != nil {
		logger.Error("failed to encode error response", logging.Error(err))
	}
}
