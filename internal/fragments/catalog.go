package fragments

import (
	"fmt"
)

// Fragment names
const (
	Base           = "base"
	TypeScript     = "typescript"
	Node           = "node"
	React          = "react"
	NextJS         = "nextjs"
	Vue            = "vue"
	Angular        = "angular"
	Svelte         = "svelte"
	Jest           = "jest"
	TestingLibrary = "testing-library"
	GraphQL        = "graphql"
	Security       = "security"
	Kitium         = "kitium"
)

var scriptFiles = []string{"**/*.{js,jsx,ts,tsx,mjs,cjs}"}

var catalogDefs = []fragmentDef{
	{
		Name:        Base,
		Description: "Style and maintainability baseline shared by every preset",
		Identifier:  "baseConfig",
		Patterns:    scriptFiles,
		Rules: map[string]any{
			"complexity":                     []any{"warn", 10},
			"max-depth":                      []any{"warn", 3},
			"max-lines-per-function":         []any{"warn", map[string]any{"max": 50, "skipBlankLines": true, "skipComments": true}},
			"max-statements":                 []any{"warn", 20},
			"no-nested-ternary":              "error",
			"no-bitwise":                     "warn",
			"prefer-exponentiation-operator": "warn",
			"no-multiple-empty-lines":        []any{"error", map[string]any{"max": 2, "maxBOF": 0, "maxEOF": 0}},
			"space-in-parens":                []any{"error", "never"},
			"array-bracket-spacing":          []any{"error", "never"},
			"object-curly-spacing":           []any{"error", "always"},
			"space-before-function-paren": []any{"error", map[string]any{
				"anonymous": "always", "named": "never", "asyncArrow": "always",
			}},
			"indent": []any{"error", 2, map[string]any{"SwitchCase": 1, "offsetTernaryExpressions": true}},
		},
	},
	{
		Name:        TypeScript,
		Description: "TypeScript language rules",
		Identifier:  "typeScriptConfig",
		Patterns:    []string{"**/*.ts", "**/*.tsx"},
		Extensions:  []string{"@typescript-eslint/eslint-plugin", "@typescript-eslint/parser"},
		Rules: map[string]any{
			"no-unused-vars": "off",
			"no-undef":       "off",
			"no-shadow":      "off",
			"@typescript-eslint/adjacent-overload-signatures": "error",
			"@typescript-eslint/array-type":                   []any{"error", map[string]any{"default": "array-simple"}},
			"@typescript-eslint/await-thenable":               "error",
			"@typescript-eslint/ban-ts-comment": []any{"error", map[string]any{
				"ts-expect-error": "allow-with-description",
				"ts-ignore":       true,
				"ts-nocheck":      true,
				"ts-check":        false,
			}},
			"@typescript-eslint/class-literal-property-style":      []any{"error", "fields"},
			"@typescript-eslint/consistent-generic-constructors":   []any{"error", "constructor"},
			"@typescript-eslint/consistent-indexed-object-style":   []any{"error", "index-signature"},
			"@typescript-eslint/consistent-type-definitions":       []any{"error", "type"},
			"@typescript-eslint/consistent-type-exports":           "error",
			"@typescript-eslint/explicit-module-boundary-types":    "off",
			"@typescript-eslint/method-signature-style":            []any{"error", "property"},
			"@typescript-eslint/no-base-to-string":                 "error",
			"@typescript-eslint/no-confusing-non-null-assertion":   "error",
			"@typescript-eslint/no-duplicate-enum-values":          "error",
			"@typescript-eslint/no-dynamic-delete":                 "error",
			"@typescript-eslint/no-explicit-any":                   "error",
			"@typescript-eslint/no-extra-non-null-assertion":       "error",
			"@typescript-eslint/no-floating-promises":              "error",
			"@typescript-eslint/no-for-in-array":                   "error",
			"@typescript-eslint/no-unused-vars":                    []any{"error", map[string]any{"argsIgnorePattern": "^_"}},
			"@typescript-eslint/prefer-nullish-coalescing":         "error",
			"@typescript-eslint/prefer-optional-chain":             "error",
			"@typescript-eslint/switch-exhaustiveness-check":       "error",
			"@typescript-eslint/no-unnecessary-type-assertion":     "error",
			"@typescript-eslint/restrict-template-expressions":     "error",
			"@typescript-eslint/no-misused-promises":               "error",
			"@typescript-eslint/require-await":                     "error",
			"@typescript-eslint/return-await":                      []any{"error", "in-try-catch"},
			"@typescript-eslint/no-unnecessary-boolean-literal-compare": "error",
		},
	},
	{
		Name:        Node,
		Description: "Node.js backend services and libraries",
		Identifier:  "nodeConfig",
		Patterns:    []string{"**/*.js", "**/*.mjs", "**/*.cjs"},
		Extensions:  []string{"eslint-plugin-import", "eslint-plugin-security", "eslint-plugin-simple-import-sort"},
		Rules: map[string]any{
			"no-process-exit":                           "warn",
			"no-sync":                                   "warn",
			"no-path-concat":                            "error",
			"handle-callback-err":                       "error",
			"no-buffer-constructor":                     "error",
			"simple-import-sort/imports":                "error",
			"simple-import-sort/exports":                "error",
			"import/first":                              "error",
			"import/newline-after-import":               "error",
			"import/no-duplicates":                      "error",
			"import/no-unresolved":                      "off",
			"import/order":                              "off",
			"import/no-self-import":                     "error",
			"import/consistent-type-specifier-style":    []any{"error", "prefer-top-level"},
			"security/detect-buffer-noassert":           "warn",
			"security/detect-child-process":             "warn",
			"security/detect-non-literal-fs-filename":   "warn",
			"security/detect-non-literal-regexp":        "warn",
			"security/detect-object-injection":          "off",
			"security/detect-possible-timing-attacks":   "warn",
			"security/detect-unsafe-regex":              "warn",
		},
	},
	{
		Name:        React,
		Description: "React components, hooks and JSX accessibility",
		Identifier:  "reactConfig",
		Patterns:    []string{"**/*.{jsx,tsx}"},
		Extensions:  []string{"eslint-plugin-react", "eslint-plugin-react-hooks", "eslint-plugin-jsx-a11y"},
		Optional:    true,
		Rules: map[string]any{
			"react/button-has-type":                "error",
			"react/display-name":                   "warn",
			"react/hook-use-state":                 "error",
			"react/iframe-missing-sandbox":         "error",
			"react/no-array-index-key":             "warn",
			"react/no-danger":                      "warn",
			"react/no-danger-with-children":        "error",
			"react/no-deprecated":                  "error",
			"react/no-direct-mutation-state":       "error",
			"react/no-unstable-nested-components":  []any{"error", map[string]any{"allowAsProps": false}},
			"react/react-in-jsx-scope":             "off",
			"react/self-closing-comp":              "error",
			"react/jsx-no-leaked-render":           []any{"warn", map[string]any{"validStrategies": []any{"ternary", "coerce"}}},
			"react-hooks/rules-of-hooks":           "error",
			"react-hooks/exhaustive-deps":          "warn",
			"jsx-a11y/alt-text":                    "error",
			"jsx-a11y/anchor-is-valid":             "error",
			"jsx-a11y/aria-props":                  "error",
			"jsx-a11y/click-events-have-key-events": "error",
			"jsx-a11y/label-has-associated-control": "error",
			"jsx-a11y/no-autofocus":                "error",
			"jsx-a11y/tabindex-no-positive":        "error",
		},
	},
	{
		Name:        NextJS,
		Description: "Next.js pages, images and scripts",
		Identifier:  "nextjsConfig",
		Patterns:    []string{"**/*.{js,jsx,ts,tsx}"},
		Extensions:  []string{"@next/eslint-plugin-next"},
		Optional:    true,
		Rules: map[string]any{
			"@next/next/no-img-element":             "error",
			"@next/next/no-html-link-for-pages":     "error",
			"@next/next/no-unwanted-polyfillio":     "warn",
			"@next/next/no-sync-scripts":            "error",
			"@next/next/no-document-import-in-page": "error",
			"@next/next/no-page-custom-font":        "warn",
			"@next/next/inline-script-id":           "error",
			"@next/next/google-font-display":        "warn",
			"@next/next/google-font-preconnect":     "warn",
			"@next/next/next-script-for-ga":         "warn",
		},
	},
	{
		Name:        Vue,
		Description: "Vue 3 single-file components",
		Identifier:  "vueConfig",
		Patterns:    []string{"**/*.vue", "**/*.vue.js", "**/*.vue.ts"},
		Extensions:  []string{"eslint-plugin-vue"},
		Optional:    true,
		Rules: map[string]any{
			"vue/multi-word-component-names":       "warn",
			"vue/require-default-prop":             "warn",
			"vue/require-explicit-emits":           "error",
			"vue/no-mutating-props":                "error",
			"vue/no-use-v-if-with-v-for":           "error",
			"vue/order-in-components":              "warn",
			"vue/this-in-template":                 []any{"error", "never"},
			"vue/html-indent":                      []any{"error", 2},
			"vue/max-attributes-per-line":          []any{"warn", map[string]any{"singleline": 3, "multiline": 1}},
			"vue/component-definition-name-casing": []any{"error", "PascalCase"},
			"vue/no-lifecycle-after-await":         "error",
			"vue/no-v-html":                        "warn",
		},
	},
	{
		Name:        Angular,
		Description: "Angular components, directives and templates",
		Identifier:  "angularConfig",
		Patterns:    []string{"**/*.ts", "**/*.component.html"},
		Extensions:  []string{"@angular-eslint/eslint-plugin"},
		Rules: map[string]any{
			"@angular-eslint/directive-selector": []any{"error", map[string]any{
				"type": "attribute", "prefix": "app", "style": "camelCase",
			}},
			"@angular-eslint/component-selector": []any{"error", map[string]any{
				"type": "element", "prefix": "app", "style": "kebab-case",
			}},
			"@angular-eslint/no-empty-lifecycle-method":      "warn",
			"@angular-eslint/no-host-metadata-property":      "warn",
			"@angular-eslint/use-lifecycle-interface":        "warn",
			"@angular-eslint/use-pipe-transform-interface":   "warn",
			"@typescript-eslint/explicit-member-accessibility": []any{"error", map[string]any{"accessibility": "explicit"}},
		},
	},
	{
		Name:        Svelte,
		Description: "Svelte components",
		Identifier:  "svelteConfig",
		Patterns:    []string{"**/*.svelte"},
		Extensions:  []string{"eslint-plugin-svelte"},
		Rules: map[string]any{
			"svelte/block-lang":              []any{"warn", map[string]any{"script": "ts", "style": "scss"}},
			"svelte/no-at-debug-tags":        "warn",
			"svelte/no-at-html-tags":         "error",
			"svelte/valid-compile":           "warn",
			"svelte/no-unused-svelte-ignore": "warn",
			"svelte/system":                  "error",
			"svelte/no-inner-declarations":   "error",
			"svelte/indent":                  []any{"warn", map[string]any{"indent": 2, "ignoredNodes": []any{}, "switchCase": 1}},
			"svelte/prefer-style-directive":  "warn",
		},
	},
	{
		Name:        Jest,
		Description: "Jest test files",
		Identifier:  "jestConfig",
		Patterns: []string{
			"**/*.test.{js,ts,jsx,tsx}",
			"**/*.spec.{js,ts,jsx,tsx}",
			"**/tests/**/*.{js,ts,jsx,tsx}",
		},
		Extensions: []string{"eslint-plugin-jest"},
		Optional:   true,
		Rules: map[string]any{
			"jest/no-disabled-tests":          "warn",
			"jest/no-focused-tests":           "error",
			"jest/no-identical-title":         "error",
			"jest/prefer-to-be":               "warn",
			"jest/prefer-to-have-length":      "warn",
			"jest/valid-expect":               "error",
			"jest/valid-expect-in-promise":    "error",
			"jest/expect-expect":              "warn",
			"jest/no-conditional-expect":      "error",
			"jest/no-large-snapshots":         []any{"warn", map[string]any{"maxSize": 50}},
			"jest/require-top-level-describe": "error",
			"jest/max-nested-describe":        []any{"warn", map[string]any{"max": 3}},
			"jest/no-duplicate-hooks":         "error",
			"jest/prefer-lowercase-title":     []any{"warn", map[string]any{"ignore": []any{"describe"}}},
		},
	},
	{
		Name:        TestingLibrary,
		Description: "Testing Library component tests",
		Identifier:  "testingLibraryConfig",
		Patterns: []string{
			"**/*.test.{jsx,tsx}",
			"**/*.spec.{jsx,tsx}",
			"**/tests/**/*.{jsx,tsx}",
			"**/__tests__/**/*.{jsx,tsx}",
		},
		Extensions: []string{"eslint-plugin-testing-library"},
		Optional:   true,
		Rules: map[string]any{
			"testing-library/prefer-screen-queries":  "warn",
			"testing-library/prefer-query-by-role":   "warn",
			"testing-library/no-node-access":         "warn",
			"testing-library/no-container":           "warn",
			"testing-library/await-async-queries":    "error",
			"testing-library/no-await-sync-queries":  "error",
			"testing-library/no-debugging-utils":     "warn",
			"testing-library/prefer-user-event":      "warn",
		},
	},
	{
		Name:        GraphQL,
		Description: "GraphQL documents and embedded queries",
		Identifier:  "graphqlConfig",
		Patterns:    []string{"**/*.graphql", "**/*.gql", "**/graphql/**/*.ts"},
		Extensions:  []string{"eslint-plugin-graphql"},
		Optional:    true,
		Rules: map[string]any{
			"graphql/no-schema-description-decorator": "off",
			"graphql/template-strings":                []any{"error", map[string]any{"env": "literal"}},
			"graphql/no-deprecated-fields":            "warn",
			"graphql/named-operations":                "warn",
			"graphql/required-fields":                 "off",
			"graphql/no-fragment-cycles":              "error",
		},
	},
	{
		Name:        Security,
		Description: "Injection, XSS, path traversal and cryptography checks",
		Identifier:  "securityConfig",
		Patterns:    scriptFiles,
		Extensions: []string{
			"eslint-plugin-security",
			"eslint-plugin-sonarjs",
			"eslint-plugin-node",
			"eslint-plugin-no-unsanitized",
		},
		Rules: map[string]any{
			"security/detect-object-injection":           "warn",
			"security/detect-non-literal-regexp":         "warn",
			"security/detect-unsafe-regex":               "error",
			"security/detect-buffer-noalloc":             "error",
			"security/detect-child-process":              "warn",
			"security/detect-non-literal-require":        "warn",
			"security/detect-non-literal-fs-filename":    "warn",
			"security/detect-eval-with-expression":       "error",
			"security/detect-pseudoRandomBytes":          "error",
			"security/detect-possible-timing-attacks":    "warn",
			"sonarjs/no-identical-expressions":           "error",
			"sonarjs/no-duplicated-branches":             "warn",
			"sonarjs/cognitive-complexity":               []any{"warn", 15},
			"sonarjs/max-switch-cases":                   []any{"warn", 40},
			"node/no-new-require":                        "error",
			"node/no-path-concat":                        "error",
			"node/no-deprecated-api":                     "warn",
			"no-unsanitized/method":                      "error",
			"no-unsanitized/property":                    "error",
			"no-eval":                                    "error",
			"no-implied-eval":                            "error",
			"no-new-func":                                "error",
			"no-script-url":                              "error",
			"no-promise-executor-return":                 "error",
		},
	},
	{
		Name:        Kitium,
		Description: "Kitium component, props and event naming standards",
		Identifier:  "kitiumConfig",
		Rules: map[string]any{
			"kitium/component-naming":        "error",
			"kitium/props-naming":            "error",
			"kitium/event-naming":            "error",
			"kitium/extends-base-props":      "warn",
			"kitium/extends-base-component":  "warn",
			"kitium/required-type-exports":   "warn",
		},
	},
}

// catalog is built once from catalogDefs; it is read-only afterwards.
var catalog, catalogIndex = mustBuildCatalog(catalogDefs)

func mustBuildCatalog(defs []fragmentDef) ([]*RuleFragment, map[string]*RuleFragment) {
	list := make([]*RuleFragment, 0, len(defs))
	index := make(map[string]*RuleFragment, len(defs))
	for _, def := range defs {
		f, err := newFragment(def)
		if err != nil {
			panic(fmt.Sprintf("fragments: %v", err))
		}
		if _, dup := index[f.name]; dup {
			panic(fmt.Sprintf("fragments: duplicate fragment %q", f.name))
		}
		list = append(list, f)
		index[f.name] = f
	}
	return list, index
}

// Catalog returns every fragment in catalog order.
func Catalog() []*RuleFragment {
	return append([]*RuleFragment(nil), catalog...)
}

// Names returns every fragment name in catalog order.
func Names() []string {
	names := make([]string, len(catalog))
	for i, f := range catalog {
		names[i] = f.name
	}
	return names
}

// Lookup returns the fragment with the given name.
func Lookup(name string) (*RuleFragment, bool) {
	f, ok := catalogIndex[name]
	return f, ok
}

// LookupIdentifier returns the fragment exported under the given identifier.
func LookupIdentifier(identifier string) (*RuleFragment, bool) {
	for _, f := range catalog {
		if f.identifier == identifier {
			return f, true
		}
	}
	return nil, false
}
