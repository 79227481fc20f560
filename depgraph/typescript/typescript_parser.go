package typescript

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// ErrSyntax is wrapped by every SyntaxError.
var ErrSyntax = errors.New("syntax error")

// SyntaxError reports the first ERROR or MISSING node of a parse tree.
type SyntaxError struct {
	Line   int // 1-based
	Column int // 1-based
	Node   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at %d:%d near %s", ErrSyntax, e.Line, e.Column, e.Node)
}

func (e *SyntaxError) Unwrap() error { return ErrSyntax }

// SourceFile is a parsed TypeScript module. Tree must be released with Close.
type SourceFile struct {
	Tree *sitter.Tree
	// Specifiers lists every import/export/require specifier in document order,
	// duplicates included.
	Specifiers []string
}

// Close releases the syntax tree.
func (f *SourceFile) Close() {
	if f != nil && f.Tree != nil {
		f.Tree.Close()
	}
}

// Parser extracts dependency specifiers from TypeScript and TSX sources.
// A Parser is safe for concurrent use; every call gets its own tree-sitter parser.
type Parser struct {
	// AllowSyntaxErrors keeps going when the tree contains error nodes.
	AllowSyntaxErrors bool
}

// Parse parses source, choosing the TSX grammar for .tsx files.
func (p *Parser) Parse(ctx context.Context, filePath string, source []byte) (*SourceFile, error) {
	lang := typescript.GetLanguage()
	if strings.HasSuffix(filePath, ".tsx") {
		lang = tsx.GetLanguage()
	}

	parser := sitter.NewParser()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TypeScript code: %w", err)
	}

	// The grammar only knows `with { ... }` import attributes. Files using the
	// older `assert { ... }` form are parsed again with every attribute clause
	// blanked out.
	if tree.RootNode().HasError() {
		if blanked, ok := blankImportAttributes(source); ok {
			retry, err := parser.ParseCtx(ctx, nil, blanked)
			if err != nil {
				tree.Close()
				return nil, fmt.Errorf("failed to parse TypeScript code: %w", err)
			}
			tree.Close()
			tree, source = retry, blanked
		}
	}

	root := tree.RootNode()
	if !p.AllowSyntaxErrors && root.HasError() {
		syntaxErr := firstSyntaxError(root, source)
		tree.Close()
		return nil, syntaxErr
	}

	return &SourceFile{
		Tree:       tree,
		Specifiers: extractSpecifiers(root, source),
	}, nil
}

// extractSpecifiers walks the tree in document order collecting static imports,
// re-exports, import-equals declarations, require calls and dynamic imports.
func extractSpecifiers(node *sitter.Node, sourceCode []byte) []string {
	var specifiers []string

	var walk func(*sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil {
			return
		}

		switch n.Type() {
		case "import_statement":
			if source := importSource(n); source != nil {
				specifiers = appendSpecifier(specifiers, source, sourceCode)
			}
		case "export_statement":
			if source := n.ChildByFieldName("source"); source != nil {
				specifiers = appendSpecifier(specifiers, source, sourceCode)
			}
		case "call_expression":
			if arg := callSpecifier(n, sourceCode); arg != nil {
				specifiers = appendSpecifier(specifiers, arg, sourceCode)
			}
		}

		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}

	walk(node)
	return specifiers
}

// importSource finds the module string of `import ... from 's'`, `import 's'`
// and `import x = require('s')`.
func importSource(n *sitter.Node) *sitter.Node {
	if source := n.ChildByFieldName("source"); source != nil {
		return source
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "string":
			return child
		case "import_require_clause":
			if source := child.ChildByFieldName("source"); source != nil {
				return source
			}
			return firstNamedChildOfType(child, "string")
		}
	}
	return nil
}

// callSpecifier returns the string argument of require('s') or import('s'). A
// template literal counts when it has no substitutions.
func callSpecifier(n *sitter.Node, sourceCode []byte) *sitter.Node {
	fn := n.ChildByFieldName("function")
	if fn == nil {
		return nil
	}
	isImport := fn.Type() == "import"
	isRequire := fn.Type() == "identifier" && fn.Content(sourceCode) == "require"
	if !isImport && !isRequire {
		return nil
	}

	args := n.ChildByFieldName("arguments")
	if args == nil || args.NamedChildCount() == 0 {
		return nil
	}
	first := args.NamedChild(0)
	switch first.Type() {
	case "string":
		return first
	case "template_string":
		if firstNamedChildOfType(first, "template_substitution") == nil {
			return first
		}
	}
	return nil
}

func firstNamedChildOfType(n *sitter.Node, nodeType string) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if child := n.NamedChild(i); child.Type() == nodeType {
			return child
		}
	}
	return nil
}

func appendSpecifier(specifiers []string, stringNode *sitter.Node, sourceCode []byte) []string {
	if specifier := unquote(stringNode.Content(sourceCode)); specifier != "" {
		return append(specifiers, specifier)
	}
	return specifiers
}

// unquote returns the value of a single-quoted, double-quoted or template
// string literal. Escapes Go cannot decode (such as \u{...}) leave the body
// as written.
func unquote(raw string) string {
	if len(raw) < 2 {
		return raw
	}
	quote := raw[0]
	if (quote != '\'' && quote != '"' && quote != '`') || raw[len(raw)-1] != quote {
		return raw
	}
	body := raw[1 : len(raw)-1]
	if !strings.Contains(body, `\`) {
		return body
	}

	// Rewrite as a Go double-quoted literal.
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case c == '\\' && i+1 < len(body):
			i++
			switch next := body[i]; next {
			case '\'', '`':
				sb.WriteByte(next)
			case '\n':
				// line continuation
			case '\r':
				if i+1 < len(body) && body[i+1] == '\n' {
					i++
				}
			default:
				sb.WriteByte('\\')
				sb.WriteByte(next)
			}
		case c == '"':
			sb.WriteString(`\"`)
		case c == '\n':
			sb.WriteString(`\n`)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')

	value, err := strconv.Unquote(sb.String())
	if err != nil {
		return body
	}
	return value
}

// importAttributeClause matches an `assert { ... }` or `with { ... }` clause
// following a module string on the same line.
var importAttributeClause = regexp.MustCompile(`["'][ \t]*((?:assert|with)[ \t]*\{[^}]*\})`)

// blankImportAttributes replaces every import attribute clause with spaces,
// keeping line breaks so positions stay put. ok is false when there was none.
func blankImportAttributes(source []byte) ([]byte, bool) {
	matches := importAttributeClause.FindAllSubmatchIndex(source, -1)
	if len(matches) == 0 {
		return nil, false
	}
	blanked := append([]byte(nil), source...)
	for _, m := range matches {
		for i := m[2]; i < m[3]; i++ {
			if blanked[i] != '\n' && blanked[i] != '\r' {
				blanked[i] = ' '
			}
		}
	}
	return blanked, true
}

func firstSyntaxError(root *sitter.Node, sourceCode []byte) *SyntaxError {
	var found *sitter.Node

	var walk func(*sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil || found != nil {
			return
		}
		if n.Type() == "ERROR" || n.IsMissing() {
			found = n
			return
		}
		if !n.HasError() {
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)

	if found == nil {
		found = root
	}
	point := found.StartPoint()
	near := found.Content(sourceCode)
	if found.IsMissing() {
		near = "missing " + found.Type()
	} else if len(near) > 20 {
		near = near[:20] + "..."
	}
	return &SyntaxError{
		Line:   int(point.Row) + 1,
		Column: int(point.Column) + 1,
		Node:   fmt.Sprintf("%q", near),
	}
}
