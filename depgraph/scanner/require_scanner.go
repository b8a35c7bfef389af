// Package scanner finds require() call sites in JavaScript source.
package scanner

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
)

// requireQuery matches require calls whose argument list holds a string literal.
const requireQuery = `
(call_expression
  function: (identifier) @require.fn
  arguments: (arguments . (string) @require.source)
  (#eq? @require.fn "require"))
`

// RequireScanner extracts the raw module references passed to require().
// The zero value is ready to use and safe for concurrent use.
type RequireScanner struct{}

// Scan parses source with the tree-sitter JavaScript grammar (which also
// accepts JSX) and returns the string literal passed to each require call,
// in source order. Calls with a computed argument are ignored.
func (RequireScanner) Scan(ctx context.Context, source []byte) ([]string, error) {
	return scan(ctx, source, requireQuery)
}

func scan(ctx context.Context, source []byte, pattern string) ([]string, error) {
	lang := javascript.GetLanguage()

	parser := sitter.NewParser()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("failed to parse JavaScript code: %w", err)
	}
	defer tree.Close()

	references, err := executeQuery(tree.RootNode(), source, lang, pattern)
	if err != nil {
		// Fall back to walking the tree when the query cannot be compiled.
		return extractRequiresManually(tree.RootNode(), source), nil
	}
	return references, nil
}

func executeQuery(rootNode *sitter.Node, source []byte, lang *sitter.Language, pattern string) ([]string, error) {
	query, err := sitter.NewQuery([]byte(pattern), lang)
	if err != nil {
		return nil, fmt.Errorf("failed to create query: %w", err)
	}
	defer query.Close()

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()

	cursor.Exec(query, rootNode)

	references := []string{}
	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}

		match = cursor.FilterPredicates(match, source)

		for _, capture := range match.Captures {
			if query.CaptureNameForId(capture.Index) != "require.source" {
				continue
			}
			if reference := cleanReference(capture.Node.Content(source)); reference != "" {
				references = append(references, reference)
			}
		}
	}

	return references, nil
}

func extractRequiresManually(node *sitter.Node, source []byte) []string {
	references := []string{}

	var walk func(*sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil {
			return
		}

		if n.Type() == "call_expression" {
			fn := n.ChildByFieldName("function")
			args := n.ChildByFieldName("arguments")
			if fn != nil && args != nil && fn.Type() == "identifier" && fn.Content(source) == "require" {
				if first := args.NamedChild(0); first != nil && first.Type() == "string" {
					if reference := cleanReference(first.Content(source)); reference != "" {
						references = append(references, reference)
					}
				}
			}
		}

		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}

	walk(node)
	return references
}

// cleanReference removes the quotes around a string literal.
func cleanReference(raw string) string {
	return strings.TrimSpace(strings.Trim(raw, "'\""))
}
