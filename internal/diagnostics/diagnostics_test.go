package diagnostics

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"runtime"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/kitium-ai/lint/internal/legacy"
	"github.com/kitium-ai/lint/internal/project"
	"github.com/kitium-ai/lint/internal/setup"
)

func init() {
	color.NoColor = true
}

func TestClassify(t *testing.T) {
	var syntaxErr error = &json.SyntaxError{Offset: 3}
	_, parseErr := legacy.ParseLiteral("module.exports = require('x')")

	tests := []struct {
		name string
		err  error
		want Category
	}{
		{"nil", nil, Unknown},
		{"no project sentinel", fmt.Errorf("migrate: %w", project.ErrNoProjectRoot), NoProject},
		{"permission sentinel", &fs.PathError{Op: "open", Path: "x", Err: fs.ErrPermission}, Permission},
		{"not found sentinel", fmt.Errorf("read: %w", fs.ErrNotExist), NotFound},
		{"literal syntax", parseErr, Parse},
		{"invalid state", fmt.Errorf("%w: bad", setup.ErrInvalidState), Parse},
		{"json syntax", fmt.Errorf("decode: %w", syntaxErr), Parse},
		{"permission text", errors.New("EACCES: permission denied, open 'x'"), Permission},
		{"not found text", errors.New("ENOENT: no such file or directory"), NotFound},
		{"parse text", errors.New("Unexpected token in JSON"), Parse},
		{"evaluation text", errors.New("cannot eval expression"), Evaluation},
		{"no project text", errors.New("could not find anything"), NoProject},
		{"unknown", errors.New("boom"), Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestChain(t *testing.T) {
	base := errors.New("root cause")
	err := fmt.Errorf("outer: %w", fmt.Errorf("middle: %w", fmt.Errorf("inner: %w", base)))

	lines := Chain(err, 3)
	assert.Equal(t, []string{
		"outer: middle: inner: root cause",
		"middle: inner: root cause",
		"inner: root cause",
	}, lines)
	assert.Len(t, Chain(base, 3), 1)
	assert.Empty(t, Chain(nil, 3))
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	err := fmt.Errorf("could not find project root (package.json): %w", project.ErrNoProjectRoot)
	Report(&buf, err, Context{Command: "migrate", WorkDir: "/work/app", LifecycleEvent: "postinstall"})

	out := buf.String()
	assert.Contains(t, out, "MIGRATE ERROR")
	assert.Contains(t, out, "Error: could not find project root (package.json): no project root found")
	assert.Contains(t, out, "Go runtime:      "+runtime.Version())
	assert.Contains(t, out, "Directory:       /work/app")
	assert.Contains(t, out, "Lifecycle event: postinstall")
	assert.Contains(t, out, "Project Not Found")
	assert.Contains(t, out, "npm init -y")
	assert.Contains(t, out, "  no project root found\n")
	assert.NotContains(t, out, "Permission Issue Detected")
}

func TestReport_UnknownHasNoRemediation(t *testing.T) {
	var buf bytes.Buffer
	Report(&buf, errors.New("boom"), Context{})

	out := buf.String()
	assert.Contains(t, out, "✗ ERROR")
	assert.Contains(t, out, "Lifecycle event: unknown")
	assert.NotContains(t, out, "Try these solutions")
	assert.Contains(t, out, "Tips")
}
