package fragments

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"
)

// ErrUnknownFragment is returned when a fragment name is not in the catalog.
var ErrUnknownFragment = errors.New("unknown fragment")

// ErrExtensionNotFound is returned by locators when a package is not installed.
var ErrExtensionNotFound = errors.New("extension not installed")

// ExtensionLocator finds an installed extension package.
// A nil error means the package is installed and loadable.
type ExtensionLocator interface {
	Locate(ctx context.Context, pkg string) error
}

// NodeModulesLocator looks for packages under node_modules in Root and its
// ancestors, the way the lint engine's module resolution does.
type NodeModulesLocator struct {
	Root string
}

// maxLocateDepth bounds the ancestor walk.
const maxLocateDepth = 10

// Locate implements ExtensionLocator.
func (l NodeModulesLocator) Locate(ctx context.Context, pkg string) error {
	dir, err := filepath.Abs(l.Root)
	if err != nil {
		return fmt.Errorf("failed to resolve root: %w", err)
	}

	for depth := 0; depth < maxLocateDepth; depth++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		manifest := filepath.Join(dir, "node_modules", filepath.FromSlash(pkg), "package.json")
		data, err := os.ReadFile(manifest)
		if err == nil {
			return checkManifest(pkg, manifest, data)
		}
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to read %s: %w", manifest, err)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return fmt.Errorf("%s: %w", pkg, ErrExtensionNotFound)
}

func checkManifest(pkg, path string, data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("%s: invalid package manifest", path)
	}
	name := gjson.GetBytes(data, "name")
	if !name.Exists() || name.String() == "" {
		return fmt.Errorf("%s: package manifest has no name", path)
	}
	if name.String() != pkg {
		return fmt.Errorf("%s: manifest declares %q, expected %q", path, name.String(), pkg)
	}
	return nil
}

// Resolution is the tagged result of resolving a fragment. When Available is
// false the fragment is degraded: it keeps its file patterns but has no rules.
type Resolution struct {
	Fragment  *RuleFragment
	Available bool
	Missing   []string
}

// Name returns the resolved fragment's name.
func (r Resolution) Name() string {
	if r.Fragment == nil {
		return ""
	}
	return r.Fragment.Name()
}

// Resolver resolves fragments against one project's installed extensions.
// Results are cached per fragment name for the resolver's lifetime.
type Resolver struct {
	locator ExtensionLocator
	logger  *slog.Logger

	mu    sync.Mutex
	cache map[string]Resolution
}

// NewResolver creates a resolver. A nil logger discards debug output.
func NewResolver(locator ExtensionLocator, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Resolver{
		locator: locator,
		logger:  logger,
		cache:   make(map[string]Resolution),
	}
}

// Resolve returns the resolution for a named fragment.
func (r *Resolver) Resolve(ctx context.Context, name string) (Resolution, error) {
	fragment, ok := Lookup(name)
	if !ok {
		return Resolution{}, fmt.Errorf("%w: %q", ErrUnknownFragment, name)
	}

	r.mu.Lock()
	if res, ok := r.cache[name]; ok {
		r.mu.Unlock()
		return res, nil
	}
	r.mu.Unlock()

	res, err := r.probe(ctx, fragment)
	if err != nil {
		return Resolution{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// A concurrent probe may have landed first; keep the first result.
	if cached, ok := r.cache[name]; ok {
		return cached, nil
	}
	r.cache[name] = res
	return res, nil
}

// probe checks the fragment's extensions. Only context cancellation is
// returned as an error; load failures degrade the fragment.
func (r *Resolver) probe(ctx context.Context, fragment *RuleFragment) (Resolution, error) {
	if !fragment.Optional() {
		return Resolution{Fragment: fragment, Available: true}, nil
	}

	var missing []string
	for _, pkg := range fragment.extensions {
		err := r.locator.Locate(ctx, pkg)
		if err == nil {
			continue
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Resolution{}, ctxErr
		}
		r.logger.Debug("optional extension unavailable",
			"fragment", fragment.Name(), "extension", pkg, "error", err)
		missing = append(missing, pkg)
	}

	if len(missing) > 0 {
		return Resolution{Fragment: fragment.degraded(), Available: false, Missing: missing}, nil
	}
	return Resolution{Fragment: fragment, Available: true}, nil
}

// ResolveAll resolves several fragments concurrently. Results keep the order
// of names.
func (r *Resolver) ResolveAll(ctx context.Context, names []string) ([]Resolution, error) {
	results := make([]Resolution, len(names))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			res, err := r.Resolve(gctx, name)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
