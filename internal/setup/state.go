package setup

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/kitium-ai/lint/internal/types"
)

// StateFile is the file setup records its answers in, in the project root.
const StateFile = ".kitium-lint.json"

// ErrInvalidState is returned when the state file exists but cannot be used.
var ErrInvalidState = errors.New("invalid setup state")

var validate = validator.New()

// StatePath returns the state file path for a project root.
func StatePath(root string) string {
	return filepath.Join(root, StateFile)
}

// NewState creates a state for a fresh set of answers.
func NewState(tools map[types.Tool]bool, pt types.ProjectType, security bool, now time.Time) types.SetupState {
	return types.SetupState{
		ID:              uuid.New().String(),
		Tools:           tools,
		ProjectType:     pt,
		IncludeSecurity: security,
		CreatedAt:       now.UTC().Truncate(time.Second),
	}
}

// LoadState reads the state file. It returns (nil, nil) when none exists.
func LoadState(root string) (*types.SetupState, error) {
	data, err := os.ReadFile(StatePath(root))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", StateFile, err)
	}

	var state types.SetupState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidState, StateFile, err)
	}
	if err := validate.Struct(state); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidState, StateFile, err)
	}
	return &state, nil
}

// SaveState validates and writes the state file.
func SaveState(root string, state types.SetupState) error {
	if err := validate.Struct(state); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode setup state: %w", err)
	}
	if err := os.WriteFile(StatePath(root), append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", StateFile, err)
	}
	return nil
}

// ResetState deletes the state file so the next run prompts again.
// A missing file is not an error.
func ResetState(root string) error {
	err := os.Remove(StatePath(root))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", StateFile, err)
	}
	return nil
}
