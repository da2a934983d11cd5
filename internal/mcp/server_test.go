package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/symextract/internal/scan"
	"github.com/mvp-joe/symextract/internal/symbols"
)

// Test Plan for extract_symbols:
// - NewServer requires a scanner
// - Valid requests return the per-file JSON projection
// - Arguments are translated into a scan request
// - Missing path_pattern, bad filter, bad lines and inverted windows are tool errors
// - Caller mistakes reported by the scanner are tool errors
// - Per-file failures appear in a second content block
// - End to end against real files

type mockScanner struct {
	got    scan.Request
	report *scan.Report
	err    error
}

func (m *mockScanner) Run(_ context.Context, req scan.Request) (*scan.Report, error) {
	m.got = req
	if m.err != nil {
		return nil, m.err
	}
	if m.report == nil {
		return &scan.Report{Files: []scan.FileSymbols{}}, nil
	}
	return m.report, nil
}

func callTool(t *testing.T, scanner SymbolScanner, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()

	handler := createExtractSymbolsHandler(scanner, nil)
	result, err := handler(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Arguments: args},
	})
	require.NoError(t, err, "should not return system error")
	require.NotNil(t, result)
	return result
}

func textAt(t *testing.T, result *mcp.CallToolResult, i int) string {
	t.Helper()
	require.Greater(t, len(result.Content), i)
	text, ok := mcp.AsTextContent(result.Content[i])
	require.True(t, ok, "should be text content")
	return text.Text
}

func TestNewServer(t *testing.T) {
	t.Parallel()

	_, err := NewServer(nil, "dev", nil)
	require.Error(t, err)

	s, err := NewServer(&mockScanner{}, "dev", nil)
	require.NoError(t, err)
	assert.NotNil(t, s.MCPServer())
}

func TestExtractSymbolsHandler_ValidRequest(t *testing.T) {
	t.Parallel()

	scanner := &mockScanner{report: &scan.Report{Files: []scan.FileSymbols{{
		Filename: "src/app.py",
		Symbols: []symbols.View{
			{Name: "App", Kind: symbols.KindClass, StartLine: 1, EndLine: 3},
		},
	}}}}

	result := callTool(t, scanner, map[string]interface{}{
		"path_pattern": "src/**/*.py",
		"filter":       "Class,function",
		"start_line":   float64(1),
		"end_line":     float64(40),
		"name_regex":   "^A",
	})
	assert.False(t, result.IsError)
	assert.Len(t, result.Content, 1)

	assert.Equal(t, "src/**/*.py", scanner.got.PathPattern)
	assert.Equal(t, symbols.NewKindSet(symbols.KindClass, symbols.KindFunction), scanner.got.Filter)
	require.NotNil(t, scanner.got.StartLine)
	require.NotNil(t, scanner.got.EndLine)
	assert.Equal(t, 1, *scanner.got.StartLine)
	assert.Equal(t, 40, *scanner.got.EndLine)
	assert.Equal(t, "^A", scanner.got.NameRegex)

	assert.JSONEq(t,
		`[{"filename":"src/app.py","symbols":[{"name":"App","kind":"class","start_line":1,"end_line":3}]}]`,
		textAt(t, result, 0))
}

func TestExtractSymbolsHandler_EmptyResult(t *testing.T) {
	t.Parallel()

	result := callTool(t, &mockScanner{}, map[string]interface{}{"path_pattern": "."})
	assert.False(t, result.IsError)
	assert.Equal(t, "[]", textAt(t, result, 0))
}

func TestExtractSymbolsHandler_InvalidArguments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args map[string]interface{}
		want string
	}{
		{"missing path", map[string]interface{}{}, "path_pattern parameter is required"},
		{"unknown kind", map[string]interface{}{"path_pattern": ".", "filter": "module"}, "unknown symbol kind"},
		{"line not a number", map[string]interface{}{"path_pattern": ".", "start_line": "3"}, "start_line must be a number"},
		{"inverted window", map[string]interface{}{"path_pattern": ".", "start_line": float64(9), "end_line": float64(3)}, "must not exceed"},
		{"regex not a string", map[string]interface{}{"path_pattern": ".", "name_regex": true}, "name_regex must be a string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			scanner := &mockScanner{}
			result := callTool(t, scanner, tt.args)
			assert.True(t, result.IsError)
			assert.Contains(t, textAt(t, result, 0), tt.want)
			assert.Empty(t, scanner.got.PathPattern, "scanner must not run")
		})
	}
}

func TestExtractSymbolsHandler_InvalidArgumentsFormat(t *testing.T) {
	t.Parallel()

	handler := createExtractSymbolsHandler(&mockScanner{}, nil)
	result, err := handler(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Arguments: "not a map"},
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestExtractSymbolsHandler_ScannerErrors(t *testing.T) {
	t.Parallel()

	for _, sentinel := range []error{scan.ErrPathNotFound, scan.ErrInvalidRegex, scan.ErrInvalidPattern} {
		result := callTool(t, &mockScanner{err: sentinel}, map[string]interface{}{"path_pattern": "missing"})
		assert.True(t, result.IsError, sentinel.Error())
	}

	handler := createExtractSymbolsHandler(&mockScanner{err: context.Canceled}, nil)
	_, err := handler(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Arguments: map[string]interface{}{"path_pattern": "."}},
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestExtractSymbolsHandler_PerFileErrors(t *testing.T) {
	t.Parallel()

	scanner := &mockScanner{report: &scan.Report{
		Files:  []scan.FileSymbols{},
		Errors: []scan.FileError{{Filename: "bad.go", Error: "failed to read file"}},
	}}

	result := callTool(t, scanner, map[string]interface{}{"path_pattern": "."})
	assert.False(t, result.IsError)
	require.Len(t, result.Content, 2)

	var errs ExtractSymbolsErrors
	require.NoError(t, json.Unmarshal([]byte(textAt(t, result, 1)), &errs))
	assert.Equal(t, "bad.go", errs.Errors[0].Filename)
}

func TestExtractSymbolsHandler_EndToEnd(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "shapes.cpp"), []byte(`class Shape {};

struct Point {
    int x;
};

void draw() {}
`), 0o644))

	result := callTool(t, scan.New(scan.Options{}), map[string]interface{}{
		"path_pattern": filepath.Join(root, "*.cpp"),
		"filter":       "struct",
	})
	require.False(t, result.IsError, textAt(t, result, 0))

	var files []scan.FileSymbols
	require.NoError(t, json.Unmarshal([]byte(textAt(t, result, 0)), &files))
	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(root, "shapes.cpp"), files[0].Filename)
	assert.Equal(t, []symbols.View{{Name: "Point", Kind: symbols.KindStruct, StartLine: 3, EndLine: 5}}, files[0].Symbols)
}
