package mcp

import "fmt"

// parseStringArg extracts a string argument from an MCP arguments map.
// Returns an error if the argument is required but missing or invalid.
func parseStringArg(argsMap map[string]interface{}, key string, required bool) (string, error) {
	val, ok := argsMap[key]
	if !ok || val == nil {
		if required {
			return "", fmt.Errorf("%s parameter is required", key)
		}
		return "", nil
	}

	str, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string", key)
	}

	if required && str == "" {
		return "", fmt.Errorf("%s cannot be empty", key)
	}

	return str, nil
}

// parseLineArg extracts an optional 1-based line number.
// Returns nil if the argument is missing, so "not provided" differs from any
// explicit value. MCP sends numbers as float64.
func parseLineArg(argsMap map[string]interface{}, key string) (*int, error) {
	val, ok := argsMap[key]
	if !ok || val == nil {
		return nil, nil
	}

	f, ok := val.(float64)
	if !ok {
		return nil, fmt.Errorf("%s must be a number", key)
	}
	if f != float64(int(f)) {
		return nil, fmt.Errorf("%s must be a whole number, got %v", key, f)
	}
	if f < 1 {
		return nil, fmt.Errorf("%s must be at least 1, got %d", key, int(f))
	}

	line := int(f)
	return &line, nil
}
