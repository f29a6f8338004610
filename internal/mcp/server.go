package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/alexvargashn/doc23/internal/config"
	"github.com/alexvargashn/doc23/internal/descriptions"
	"github.com/alexvargashn/doc23/internal/doc"
	"github.com/alexvargashn/doc23/internal/extract"
	"github.com/alexvargashn/doc23/internal/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server represents the MCP server instance
type Server struct {
	config     *config.Config
	docService *doc.Service
	mcpServer  *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, docService *doc.Service) (*Server, error) {
	if docService == nil {
		return nil, fmt.Errorf("docService cannot be nil")
	}

	// Create MCP server
	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // We don't support dynamic tool capabilities
	)

	s := &Server{
		config:     cfg,
		docService: docService,
		mcpServer:  mcpServer,
	}

	// Register tools
	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	// Register document structure tool
	docStructureFileTool := mcp.NewTool(
		"doc_structure_file",
		mcp.WithDescription(descriptions.DocStructureFileDescription),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the document file"),
		),
		mcp.WithString("schema_path",
			mcp.Description("Path to the level schema file (JSON or YAML); falls back to the server default schema"),
		),
		mcp.WithString("schema_json",
			mcp.Description("Inline level schema as a JSON document; takes precedence over schema_path"),
		),
	)
	s.mcpServer.AddTool(docStructureFileTool, s.handleDocStructureFile)

	// Register document extract tool
	docExtractFileTool := mcp.NewTool(
		"doc_extract_file",
		mcp.WithDescription(descriptions.DocExtractFileDescription),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the document file"),
		),
	)
	s.mcpServer.AddTool(docExtractFileTool, s.handleDocExtractFile)

	// Register document type detection tool
	docDetectTypeTool := mcp.NewTool(
		"doc_detect_type",
		mcp.WithDescription(descriptions.DocDetectTypeDescription),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the file to inspect"),
		),
	)
	s.mcpServer.AddTool(docDetectTypeTool, s.handleDocDetectType)

	// Register schema validation tool
	docValidateSchemaTool := mcp.NewTool(
		"doc_validate_schema",
		mcp.WithDescription(descriptions.DocValidateSchemaDescription),
		mcp.WithString("schema",
			mcp.Required(),
			mcp.Description("Level schema document to validate"),
		),
		mcp.WithString("format",
			mcp.Description("Schema format: json or yaml (detected from content if empty)"),
		),
	)
	s.mcpServer.AddTool(docValidateSchemaTool, s.handleDocValidateSchema)

	// Register server info tool
	docServerInfoTool := mcp.NewTool(
		"doc_server_info",
		mcp.WithDescription(descriptions.DocServerInfoDescription),
	)
	s.mcpServer.AddTool(docServerInfoTool, s.handleDocServerInfo)
}

// Handler functions
func (s *Server) handleDocStructureFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.checkFileSize(path); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sch, err := s.resolveSchema(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.docService.StructureFile(path, sch)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}

	responseText := fmt.Sprintf("Successfully structured document: %s\n\n%s", path, data)
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleDocExtractFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.checkFileSize(path); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	text, err := s.docService.ExtractFile(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Successfully extracted text from: %s\n", path)
	responseText += fmt.Sprintf("Length: %d characters\n", len(text))
	responseText += "\nContent:\n"
	responseText += text

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleDocDetectType(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// The longest magic prefix is well under 1KB.
	f, err := os.Open(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to open file: %v", err)), nil
	}
	defer f.Close()

	head := make([]byte, 1024)
	n, _ := f.Read(head)
	format := extract.DetectFormat(head[:n])

	var responseText string
	if format == extract.FormatUnknown {
		responseText = fmt.Sprintf("File %s has an unrecognized format", path)
	} else {
		responseText = fmt.Sprintf("File %s detected as: %s\n", path, format)
		if extract.IsSupportedExtension(path) {
			responseText += "The file extension is supported for extraction and structuring."
		} else {
			responseText += "Rename the file with a matching extension to process it."
		}
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleDocValidateSchema(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := request.RequireString("schema")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	format := request.GetString("format", "")
	if format == "" {
		format = sniffSchemaFormat(raw)
	}

	sch, err := schema.Parse([]byte(raw), format)
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("Schema validation failed: %v", err)), nil
	}

	responseText := fmt.Sprintf("Schema is valid: %d level(s), root level %q", sch.Len(), rootLevelName(sch))
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleDocServerInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := fmt.Sprintf("📄 %s v%s\n", s.config.ServerName, s.config.Version)
	text += fmt.Sprintf("Mode: %s\n", s.config.Mode)
	text += fmt.Sprintf("Document directory: %s\n", s.config.DocumentDirectory)
	text += fmt.Sprintf("Scan mode: %s\n", s.config.ScanMode)
	if s.config.SchemaPath != "" {
		text += fmt.Sprintf("Default schema: %s\n", s.config.SchemaPath)
	}
	text += fmt.Sprintf("Max file size: %d bytes\n", s.config.MaxFileSize)

	text += "\n🔧 Available Tools:\n"
	for _, name := range []string{
		"doc_structure_file",
		"doc_extract_file",
		"doc_detect_type",
		"doc_validate_schema",
		"doc_server_info",
	} {
		text += fmt.Sprintf("  • %s\n", name)
	}

	text += "\n📂 Supported Formats:\n"
	for _, ext := range extract.SupportedExtensionList() {
		text += fmt.Sprintf("  • %s\n", ext)
	}

	// Usage guidance
	text += "\n" + descriptions.UsageGuidance

	return mcp.NewToolResultText(text), nil
}

// resolveSchema loads the schema for a structure request: inline JSON wins,
// then an explicit schema_path, then the server default.
func (s *Server) resolveSchema(request mcp.CallToolRequest) (*schema.Schema, error) {
	if raw := request.GetString("schema_json", ""); raw != "" {
		return schema.Parse([]byte(raw), "json")
	}
	path := request.GetString("schema_path", "")
	if path == "" {
		path = s.config.SchemaPath
	}
	if path == "" {
		return nil, fmt.Errorf("no schema provided: pass schema_json or schema_path, or configure a default schema")
	}
	return schema.LoadFile(path)
}

func (s *Server) checkFileSize(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to access file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a file", path)
	}
	if s.config.MaxFileSize > 0 && info.Size() > s.config.MaxFileSize {
		return fmt.Errorf("file too large: %d bytes (maximum %d)", info.Size(), s.config.MaxFileSize)
	}
	return nil
}

func sniffSchemaFormat(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return "json"
	}
	return "yaml"
}

func rootLevelName(s *schema.Schema) string {
	for i := 0; i < s.Len(); i++ {
		if s.At(i).Parent == "" {
			return s.At(i).Name
		}
	}
	return ""
}

// Run starts the MCP server over stdio
func (s *Server) Run(ctx context.Context) error {
	return s.runStdioMode(ctx)
}

// runStdioMode runs the server in stdio mode
func (s *Server) runStdioMode(_ context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting document MCP server in stdio mode")
		log.Printf("Document directory: %s", s.config.DocumentDirectory)
	}

	// Use the mark3labs/mcp-go server.ServeStdio function
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}
