package languages

import (
	"testing"

	"github.com/mvp-joe/symextract/internal/symbols"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for PythonExtractor:
// - Top-level functions with correct start lines
// - Classes with correct start lines; methods are functions
// - Mixed module: class, method and functions in pre-order
// - Nested functions inside functions and methods are all found
// - Decorated definitions are still found

func TestPythonExtractor_Functions(t *testing.T) {
	t.Parallel()

	source := `
def hello_world():
    print("Hello, World!")

def add(a, b):
    return a + b

def multiply(x, y):
    return x * y
`
	syms := walk(t, ".py", NewPythonExtractor(), source)
	functions := ofKind(syms, symbols.KindFunction)

	require.Len(t, functions, 3)
	assert.Equal(t, 2, find(t, functions, "hello_world").StartLine)
	assert.Equal(t, 3, find(t, functions, "hello_world").EndLine)
	assert.Equal(t, 5, find(t, functions, "add").StartLine)
	assert.Equal(t, 8, find(t, functions, "multiply").StartLine)

	add := find(t, functions, "add")
	assert.Equal(t, "add", textOf(source, add.NameRange))
	assert.Contains(t, textOf(source, add.BodyRange), "return a + b")
}

func TestPythonExtractor_Classes(t *testing.T) {
	t.Parallel()

	source := `
class Calculator:
    def __init__(self):
        self.value = 0

    def add(self, x):
        return self.value + x

class Point:
    def __init__(self, x, y):
        self.x = x
        self.y = y
`
	syms := walk(t, ".py", NewPythonExtractor(), source)
	classes := ofKind(syms, symbols.KindClass)

	require.Len(t, classes, 2)
	assert.Equal(t, 2, find(t, classes, "Calculator").StartLine)
	assert.Equal(t, 9, find(t, classes, "Point").StartLine)
	assert.Len(t, ofKind(syms, symbols.KindFunction), 3)
}

func TestPythonExtractor_MixedModule(t *testing.T) {
	t.Parallel()

	source := `
def main():
    print("Hello")

class TestClass:
    def method(self):
        pass

def another_function():
    return 42
`
	syms := walk(t, ".py", NewPythonExtractor(), source)

	assert.Equal(t, []string{"main", "TestClass", "method", "another_function"}, names(syms))
	assert.Len(t, ofKind(syms, symbols.KindFunction), 3)
	assert.Len(t, ofKind(syms, symbols.KindClass), 1)
}

func TestPythonExtractor_LineNumbers(t *testing.T) {
	t.Parallel()

	source := `def first_function():
    pass

class TestClass:
    def method(self):
        pass

def last_function():
    return True`

	syms := walk(t, ".py", NewPythonExtractor(), source)

	assert.Equal(t, 1, find(t, syms, "first_function").StartLine)
	assert.Equal(t, 4, find(t, syms, "TestClass").StartLine)
	assert.Equal(t, 8, find(t, syms, "last_function").StartLine)
	assert.Equal(t, 9, find(t, syms, "last_function").EndLine)
}

func TestPythonExtractor_NestedFunctions(t *testing.T) {
	t.Parallel()

	source := `
def outer_function():
    def inner_function():
        return "nested"
    return inner_function()

class OuterClass:
    def outer_method(self):
        def inner_function():
            return "nested in method"
        return inner_function()
`
	syms := walk(t, ".py", NewPythonExtractor(), source)

	assert.Equal(t,
		[]string{"outer_function", "inner_function", "OuterClass", "outer_method", "inner_function"},
		names(syms))
	assert.Equal(t, 3, syms[1].StartLine)
	assert.Equal(t, 9, syms[4].StartLine)
}

func TestPythonExtractor_Decorated(t *testing.T) {
	t.Parallel()

	source := "@cache\ndef cached():\n    return 1\n"
	syms := walk(t, ".py", NewPythonExtractor(), source)

	require.Len(t, syms, 1)
	assert.Equal(t, "cached", syms[0].Name)
	assert.Equal(t, 2, syms[0].StartLine)
}
