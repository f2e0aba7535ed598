// Package server exposes the tracking engine over the Model Context
// Protocol. Every tool takes a working_directory argument and resolves
// it through a shared engine registry, so one server instance can track
// any number of projects.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/keshon/rewind/internal/config"
	"github.com/keshon/rewind/internal/logger"
	"github.com/keshon/rewind/internal/tracker"
)

const missingWorkdirMsg = "working_directory is required. Please provide the project directory path."

type Server struct {
	reg *tracker.Registry
	mcp *mcpserver.MCPServer
	log logger.Logger
}

func New() *Server {
	config.SetDefaults()
	s := &Server{
		reg: tracker.NewRegistry(),
		log: logger.Default,
	}
	s.mcp = mcpserver.NewMCPServer(
		"rewind",
		config.Version,
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithRecovery(),
	)
	s.registerTools()
	return s
}

// ServeStdio blocks serving MCP requests over stdin/stdout.
func (s *Server) ServeStdio() error {
	s.log.Info("serving MCP over stdio")
	return mcpserver.ServeStdio(s.mcp)
}

// ServeHTTP blocks serving MCP requests over streamable HTTP on addr.
func (s *Server) ServeHTTP(addr string) error {
	s.log.Info("serving MCP over HTTP on %s", addr)
	return mcpserver.NewStreamableHTTPServer(s.mcp).Start(addr)
}

func (s *Server) registerTools() {
	s.mcp.AddTool(mcp.NewTool("initialize_tracking",
		mcp.WithDescription("Create the baseline snapshot of the project directory and start tracking changes. Re-running discards any previously recorded states."),
		mcp.WithString("working_directory",
			mcp.Required(),
			mcp.Description("Absolute path to the project directory to track"),
		),
	), s.handleInitialize)

	s.mcp.AddTool(mcp.NewTool("save_current_changes",
		mcp.WithDescription("Record the files that differ from the baseline as a new numbered state. Reports when nothing changed."),
		mcp.WithString("working_directory",
			mcp.Required(),
			mcp.Description("Absolute path to the tracked project directory"),
		),
		mcp.WithString("prompt_text",
			mcp.Description("The prompt or request that led to these changes"),
		),
		mcp.WithString("description",
			mcp.Description("Short human description of the changes"),
		),
	), s.handleSave)

	s.mcp.AddTool(mcp.NewTool("restore_to_state",
		mcp.WithDescription("Restore the project files to a recorded state. State 0 is the initial baseline."),
		mcp.WithString("working_directory",
			mcp.Required(),
			mcp.Description("Absolute path to the tracked project directory"),
		),
		mcp.WithNumber("state_number",
			mcp.Required(),
			mcp.Description("State to restore, 0 for the initial baseline"),
		),
	), s.handleRestore)

	s.mcp.AddTool(mcp.NewTool("list_states",
		mcp.WithDescription("List all recorded states with timestamps, prompts and descriptions."),
		mcp.WithString("working_directory",
			mcp.Required(),
			mcp.Description("Absolute path to the tracked project directory"),
		),
	), s.handleList)

	s.mcp.AddTool(mcp.NewTool("show_state_details",
		mcp.WithDescription("Show full details of one recorded state, including the list of changed files."),
		mcp.WithString("working_directory",
			mcp.Required(),
			mcp.Description("Absolute path to the tracked project directory"),
		),
		mcp.WithNumber("state_number",
			mcp.Required(),
			mcp.Description("State to inspect, 0 for the initial baseline"),
		),
	), s.handleDetails)

	s.mcp.AddTool(mcp.NewTool("cleanup_old_states",
		mcp.WithDescription("Delete the oldest recorded states, keeping only the most recent ones."),
		mcp.WithString("working_directory",
			mcp.Required(),
			mcp.Description("Absolute path to the tracked project directory"),
		),
		mcp.WithNumber("keep_last_n",
			mcp.Description("How many of the most recent states to keep"),
		),
	), s.handleCleanup)

	s.mcp.AddTool(mcp.NewTool("get_current_status",
		mcp.WithDescription("Report whether tracking is initialized and which state is current."),
		mcp.WithString("working_directory",
			mcp.Required(),
			mcp.Description("Absolute path to the project directory"),
		),
	), s.handleStatus)
}

func (s *Server) handleInitialize(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tr, res := s.resolve(req)
	if res != nil {
		return res, nil
	}
	out, err := tr.Initialize()
	return s.respond(tr, out, err)
}

func (s *Server) handleSave(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tr, res := s.resolve(req)
	if res != nil {
		return res, nil
	}
	prompt := req.GetString("prompt_text", "")
	description := req.GetString("description", "")
	out, err := tr.Save(prompt, description)
	return s.respond(tr, out, err)
}

func (s *Server) handleRestore(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tr, res := s.resolve(req)
	if res != nil {
		return res, nil
	}
	stateNumber, err := req.RequireInt("state_number")
	if err != nil {
		return errorResult(tr.Root, "state_number is required"), nil
	}
	out, err := tr.Restore(stateNumber)
	return s.respond(tr, out, err)
}

func (s *Server) handleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tr, res := s.resolve(req)
	if res != nil {
		return res, nil
	}
	out, err := tr.ListStates()
	return s.respond(tr, out, err)
}

func (s *Server) handleDetails(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tr, res := s.resolve(req)
	if res != nil {
		return res, nil
	}
	stateNumber, err := req.RequireInt("state_number")
	if err != nil {
		return errorResult(tr.Root, "state_number is required"), nil
	}
	out, err := tr.StateDetails(stateNumber)
	return s.respond(tr, out, err)
}

func (s *Server) handleCleanup(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tr, res := s.resolve(req)
	if res != nil {
		return res, nil
	}
	keep := req.GetInt("keep_last_n", config.KeepLastN())
	out, err := tr.Cleanup(keep)
	return s.respond(tr, out, err)
}

func (s *Server) handleStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tr, res := s.resolve(req)
	if res != nil {
		return res, nil
	}
	out, err := tr.Status()
	return s.respond(tr, out, err)
}

// resolve looks up the engine for the request's working directory. A nil
// tracker with a non-nil result means the request itself was malformed.
func (s *Server) resolve(req mcp.CallToolRequest) (*tracker.Tracker, *mcp.CallToolResult) {
	workdir, err := req.RequireString("working_directory")
	if err != nil || workdir == "" {
		text, err := json.MarshalIndent(map[string]string{
			"status":  tracker.StatusError,
			"message": missingWorkdirMsg,
		}, "", "  ")
		if err != nil {
			return nil, mcp.NewToolResultError(missingWorkdirMsg)
		}
		return nil, mcp.NewToolResultText(string(text))
	}
	tr, err := s.reg.Get(workdir)
	if err != nil {
		return nil, errorResult(workdir, Humanize(err))
	}
	return tr, nil
}

func (s *Server) respond(tr *tracker.Tracker, out any, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		s.log.Warn("%s: %v", tr.Root, err)
		return errorResult(tr.Root, Humanize(err)), nil
	}
	text, err := Envelope(out, tr.Root)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(text), nil
}

func errorResult(workdir, message string) *mcp.CallToolResult {
	text, err := Envelope(map[string]any{
		"status":  tracker.StatusError,
		"message": message,
	}, workdir)
	if err != nil {
		return mcp.NewToolResultError(message)
	}
	return mcp.NewToolResultText(text)
}

// Envelope renders an operation result as indented JSON with the
// working_directory field stamped in, the shape every tool returns.
func Envelope(result any, workdir string) (string, error) {
	raw, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("encode result: %w", err)
	}
	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return "", fmt.Errorf("encode result: %w", err)
	}
	fields["working_directory"] = workdir

	out, err := json.MarshalIndent(fields, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode result: %w", err)
	}
	return string(out), nil
}

// Humanize turns engine errors into the messages clients see.
func Humanize(err error) string {
	if errors.Is(err, tracker.ErrNotInitialized) {
		return "Not initialized. Run initialize_tracking() first."
	}
	msg := err.Error()
	if msg == "" {
		return msg
	}
	r, size := utf8.DecodeRuneInString(msg)
	return string(unicode.ToUpper(r)) + msg[size:]
}
