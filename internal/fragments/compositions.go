package fragments

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

// ErrUnknownComposition is returned when a composition name is not defined.
var ErrUnknownComposition = errors.New("unknown composition")

// Composition is a named, ordered list of fragments.
type Composition string

// Compositions
const (
	CompositionFullstack       Composition = "fullstack"
	CompositionFullstackStrict Composition = "fullstack_strict"
	CompositionReactSPA        Composition = "react_spa"
	CompositionNextJSApp       Composition = "nextjs_app"
	CompositionNodeAPI         Composition = "node_api"
	CompositionGraphQLAPI      Composition = "graphql_api"
	CompositionVueSPA          Composition = "vue_spa"
	CompositionMonorepo        Composition = "monorepo"
	CompositionLibrary         Composition = "library"
	CompositionMinimal         Composition = "minimal"
	CompositionAll             Composition = "all"
)

var fullstack = []string{Base, TypeScript, React, Node, Jest, TestingLibrary, Security}

var compositions = map[Composition][]string{
	CompositionFullstack:       fullstack,
	CompositionFullstackStrict: append(slices.Clone(fullstack), Kitium),
	CompositionReactSPA:        {Base, TypeScript, React, Jest, TestingLibrary},
	CompositionNextJSApp:       {Base, TypeScript, React, NextJS, Jest, TestingLibrary, Security},
	CompositionNodeAPI:         {Base, TypeScript, Node, Jest, Security},
	CompositionGraphQLAPI:      {Base, TypeScript, Node, GraphQL, Jest, Security},
	CompositionVueSPA:          {Base, TypeScript, Vue, Jest},
	CompositionMonorepo:        {Base, TypeScript, Jest, Security},
	CompositionLibrary:         {Base, TypeScript, Jest, Security},
	CompositionMinimal:         {Base},
	CompositionAll:             {Base, TypeScript, React, Node, Jest, TestingLibrary, GraphQL, Vue, NextJS, Security},
}

// AllCompositions returns every composition in display order.
func AllCompositions() []Composition {
	return []Composition{
		CompositionFullstack,
		CompositionFullstackStrict,
		CompositionReactSPA,
		CompositionNextJSApp,
		CompositionNodeAPI,
		CompositionGraphQLAPI,
		CompositionVueSPA,
		CompositionMonorepo,
		CompositionLibrary,
		CompositionMinimal,
		CompositionAll,
	}
}

// CompositionFragments returns the fragment names of a composition.
func CompositionFragments(name Composition) ([]string, error) {
	names, ok := compositions[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownComposition, name)
	}
	return slices.Clone(names), nil
}

// Compose resolves every fragment of a composition, in order.
func Compose(ctx context.Context, resolver *Resolver, name Composition) ([]Resolution, error) {
	names, err := CompositionFragments(name)
	if err != nil {
		return nil, err
	}
	return resolver.ResolveAll(ctx, names)
}
