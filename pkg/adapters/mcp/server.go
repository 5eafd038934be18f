package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/pkg/cipher"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/loader"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"
)

const machinesURI = "turing://machines"

// RunResponse provides a unified structure for every tool that runs a machine.
type RunResponse struct {
	ID         string         `json:"id,omitempty" jsonschema_description:"Stored run ID, when a run store is configured"`
	Machine    string         `json:"machine" jsonschema_description:"Name of the machine that ran"`
	Output     string         `json:"output" jsonschema_description:"Final tape contents without surrounding blanks"`
	Outcome    domain.Outcome `json:"outcome" jsonschema_description:"accepted, rejected or limit_exceeded"`
	FinalState string         `json:"final_state" jsonschema_description:"State the machine stopped in"`
	Steps      int            `json:"steps" jsonschema_description:"Number of transitions applied"`
}

// CipherArgs are the arguments of the encrypt and decrypt tools.
type CipherArgs struct {
	Key     string `json:"key"`
	Message string `json:"message"`
}

// RunArgs are the arguments of the run_machine tool.
type RunArgs struct {
	Name  string `json:"name"`
	Input string `json:"input"`
}

// DescribeArgs are the arguments of the describe_machine tool.
type DescribeArgs struct {
	Name string `json:"name"`
}

// Server exposes machines as MCP tools.
type Server struct {
	loader    ports.MachineLoader
	store     ports.RunStore
	cipher    *cipher.Cipher
	stepLimit int
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

type Option func(*Server)

// WithStore keeps every run made through the tools.
func WithStore(store ports.RunStore) Option {
	return func(s *Server) {
		s.store = store
	}
}

// WithStepLimit bounds every run (default turing.DefaultStepLimit).
func WithStepLimit(limit int) Option {
	return func(s *Server) {
		s.stepLimit = limit
	}
}

// WithLogger sets the logger. Stdio servers must not log to stdout.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(machines ports.MachineLoader, opts ...Option) *Server {
	s := &Server{
		loader:    machines,
		stepLimit: turing.DefaultStepLimit,
		mcpServer: server.NewMCPServer("turing-mcp", strings.TrimSpace(turing.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	s.cipher = cipher.New(s.machineOptions()...)
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) machineOptions() []turing.Option {
	opts := []turing.Option{
		turing.WithStepLimit(s.stepLimit),
		turing.WithLogger(s.logger),
	}
	if s.store != nil {
		opts = append(opts, turing.WithStore(s.store))
	}
	return opts
}

func (s *Server) registerTools() {
	// TOOL: encrypt
	s.mcpServer.AddTool(mcp.NewTool("encrypt",
		mcp.WithDescription("Encrypt an uppercase message (letters and spaces) with the Caesar cipher Turing machine."),
		mcp.WithString("key", mcp.Required(), mcp.Description("Shift as digits, or a single letter A=1 ... Z=26")),
		mcp.WithString("message", mcp.Required(), mcp.Description("Message made of A-Z and spaces")),
		mcp.WithOutputSchema[RunResponse](),
	), mcp.NewStructuredToolHandler(s.handleEncrypt))

	// TOOL: decrypt
	s.mcpServer.AddTool(mcp.NewTool("decrypt",
		mcp.WithDescription("Decrypt a Caesar-encrypted message with the inverse Turing machine."),
		mcp.WithString("key", mcp.Required(), mcp.Description("Shift used to encrypt, as digits or a letter")),
		mcp.WithString("message", mcp.Required(), mcp.Description("Ciphertext made of A-Z and spaces")),
		mcp.WithOutputSchema[RunResponse](),
	), mcp.NewStructuredToolHandler(s.handleDecrypt))

	// TOOL: run_machine
	s.mcpServer.AddTool(mcp.NewTool("run_machine",
		mcp.WithDescription("Run a named machine over an input string."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Machine name, see "+machinesURI)),
		mcp.WithString("input", mcp.Required(), mcp.Description("Input, one symbol per character")),
		mcp.WithOutputSchema[RunResponse](),
	), mcp.NewStructuredToolHandler(s.handleRun))

	// TOOL: describe_machine
	s.mcpServer.AddTool(mcp.NewTool("describe_machine",
		mcp.WithDescription("Get the full definition of a named machine."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Machine name")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args DescribeArgs
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		text, err := s.describe(args.Name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(text), nil
	})
}

func (s *Server) handleEncrypt(ctx context.Context, _ mcp.CallToolRequest, args CipherArgs) (RunResponse, error) {
	return s.runCipher(ctx, cipher.Encrypt, args)
}

func (s *Server) handleDecrypt(ctx context.Context, _ mcp.CallToolRequest, args CipherArgs) (RunResponse, error) {
	return s.runCipher(ctx, cipher.Decrypt, args)
}

func (s *Server) runCipher(ctx context.Context, mode cipher.Mode, args CipherArgs) (RunResponse, error) {
	shift, err := cipher.ParseKey(args.Key)
	if err != nil {
		return RunResponse{}, err
	}
	m, err := s.cipher.Machine(mode, shift)
	if err != nil {
		return RunResponse{}, err
	}
	return s.record(ctx, m, args.Message)
}

func (s *Server) handleRun(ctx context.Context, _ mcp.CallToolRequest, args RunArgs) (RunResponse, error) {
	spec, err := s.loader.GetMachine(args.Name)
	if err != nil {
		return RunResponse{}, err
	}
	m, err := turing.New(spec, s.machineOptions()...)
	if err != nil {
		return RunResponse{}, err
	}
	return s.record(ctx, m, args.Input)
}

func (s *Server) record(ctx context.Context, m *turing.Machine, input string) (RunResponse, error) {
	rec, err := m.Record(ctx, input)
	if err != nil {
		s.logger.Warn("MCP run rejected", "machine", m.Spec().Name(), "error", err)
		return RunResponse{}, fmt.Errorf("run failed: %w", err)
	}
	resp := RunResponse{
		Machine:    rec.Machine,
		Output:     rec.Result.Output,
		Outcome:    rec.Result.Outcome,
		FinalState: string(rec.Result.FinalState),
		Steps:      rec.Result.Steps,
	}
	if s.store != nil {
		resp.ID = rec.ID
	}
	return resp, nil
}

// describe renders the machine as its YAML document.
func (s *Server) describe(name string) (string, error) {
	spec, err := s.loader.GetMachine(name)
	if err != nil {
		return "", err
	}
	out, err := loader.Marshal(spec.Definition())
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (s *Server) registerResources() {
	// EXPOSE: turing://machines
	s.mcpServer.AddResource(mcp.NewResource(machinesURI, "Available machines",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		text, err := s.machinesJSON()
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      machinesURI,
				MIMEType: "application/json",
				Text:     text,
			},
		}, nil
	})
}

func (s *Server) machinesJSON() (string, error) {
	names, err := s.loader.ListMachines()
	if err != nil {
		return "", fmt.Errorf("failed to list machines: %w", err)
	}
	data, err := json.Marshal(names)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
