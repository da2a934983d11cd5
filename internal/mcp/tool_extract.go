package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/symextract/internal/extractor"
	"github.com/mvp-joe/symextract/internal/logging"
	"github.com/mvp-joe/symextract/internal/scan"
	"github.com/mvp-joe/symextract/internal/symbols"
)

// ExtractSymbolsToolName is the registered name of the extraction tool.
const ExtractSymbolsToolName = "extract_symbols"

// SymbolScanner runs a batch extraction.
type SymbolScanner interface {
	Run(ctx context.Context, req scan.Request) (*scan.Report, error)
}

// AddExtractSymbolsTool registers the extract_symbols tool with an MCP server.
func AddExtractSymbolsTool(s *server.MCPServer, scanner SymbolScanner, logger *slog.Logger) {
	tool := mcp.NewTool(
		ExtractSymbolsToolName,
		mcp.WithDescription(`Parse source code files and extract symbols (functions, classes, structs, variables, etc.) with line ranges.

Supports single files, directories (recursive) and glob patterns with brace expansion.

Examples:
- path_pattern='**/*.{h,hpp,cpp,cc}' - all C++ files
- path_pattern='src/**/*.{go,py}' - Go and Python files under src
- path_pattern='/path/to/project/' - an entire directory
- path_pattern='**/*{Test,Spec}.js' - test files

Use filter to restrict kinds: function, class, struct, variable, method, enum, trait, interface, type.
Returns symbols grouped by filename with 1-based line numbers.`),
		mcp.WithString("path_pattern",
			mcp.Required(),
			mcp.Description("File path, directory, or glob pattern")),
		mcp.WithString("filter",
			mcp.Description("Comma-separated symbol kinds to keep (e.g. 'function' or 'class,struct')")),
		mcp.WithNumber("start_line",
			mcp.Description("Keep symbols starting on or after this line")),
		mcp.WithNumber("end_line",
			mcp.Description("Keep symbols starting on or before this line")),
		mcp.WithString("name_regex",
			mcp.Description("Keep symbols whose name matches this regular expression")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, createExtractSymbolsHandler(scanner, logger))
}

// ExtractSymbolsErrors is the optional second content block listing files
// that could not be processed.
type ExtractSymbolsErrors struct {
	Errors []scan.FileError `json:"errors"`
}

// createExtractSymbolsHandler creates the handler function for extract_symbols.
// Bad arguments produce tool errors; only internal failures are returned as errors.
func createExtractSymbolsHandler(scanner SymbolScanner, logger *slog.Logger) server.ToolHandlerFunc {
	if logger == nil {
		logger = logging.Nop()
	}
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		req, err := parseExtractRequest(argsMap)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		report, err := scanner.Run(ctx, req)
		if err != nil {
			if isRequestError(err) {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return nil, fmt.Errorf("extraction failed: %w", err)
		}

		logger.Debug("extract_symbols completed",
			"path_pattern", req.PathPattern,
			"files", len(report.Files),
			"errors", len(report.Errors))

		jsonData, err := json.Marshal(report.Files)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response: %w", err)
		}
		result := mcp.NewToolResultText(string(jsonData))

		if len(report.Errors) > 0 {
			errData, err := json.Marshal(ExtractSymbolsErrors{Errors: report.Errors})
			if err != nil {
				return nil, fmt.Errorf("failed to marshal errors: %w", err)
			}
			result.Content = append(result.Content, mcp.NewTextContent(string(errData)))
		}

		return result, nil
	}
}

func parseExtractRequest(argsMap map[string]interface{}) (scan.Request, error) {
	var req scan.Request
	var err error

	if req.PathPattern, err = parseStringArg(argsMap, "path_pattern", true); err != nil {
		return req, err
	}

	filter, err := parseStringArg(argsMap, "filter", false)
	if err != nil {
		return req, err
	}
	if req.Filter, err = symbols.ParseKindSet(strings.ToLower(filter)); err != nil {
		return req, err
	}

	if req.StartLine, err = parseLineArg(argsMap, "start_line"); err != nil {
		return req, err
	}
	if req.EndLine, err = parseLineArg(argsMap, "end_line"); err != nil {
		return req, err
	}
	if req.StartLine != nil && req.EndLine != nil && *req.StartLine > *req.EndLine {
		return req, fmt.Errorf("start_line (%d) must not exceed end_line (%d)", *req.StartLine, *req.EndLine)
	}

	if req.NameRegex, err = parseStringArg(argsMap, "name_regex", false); err != nil {
		return req, err
	}

	return req, nil
}

// isRequestError reports whether err stems from the caller's input.
func isRequestError(err error) bool {
	return errors.Is(err, scan.ErrPathNotFound) ||
		errors.Is(err, scan.ErrInvalidPattern) ||
		errors.Is(err, scan.ErrInvalidRegex) ||
		errors.Is(err, extractor.ErrUnknownGrammar)
}
