package wrapper

import (
	"context"
	"strings"
	"unicode"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
)

// AST locates the intended component with a JavaScript (JSX aware) syntax
// tree instead of text patterns. Sources that do not parse cleanly fall back
// to the Regex strategy so stored templates keep rendering.
type AST struct {
	fallback Wrapper
}

func NewAST() *AST {
	return &AST{fallback: Regex{}}
}

func (a *AST) Wrap(code string) string {
	src := []byte(code)

	// sitter.Parser is not safe for concurrent use, so one per call.
	parser := sitter.NewParser()
	parser.SetLanguage(javascript.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return a.fallback.Wrap(code)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil || root.HasError() {
		return a.fallback.Wrap(code)
	}

	if out, ok := rebindDefaultExport(root, src); ok {
		return out
	}

	if name := componentName(root, src); name != "" {
		return code + "\n\nconst " + EntryPoint + " = " + name + ";"
	}

	if root.NamedChildCount() == 1 && root.NamedChild(0).Type() == "expression_statement" {
		expr := root.NamedChild(0).NamedChild(0)
		if expr != nil {
			return "const " + EntryPoint + " = (" + expr.Content(src) + ");"
		}
	}

	return a.fallback.Wrap(code)
}

func rebindDefaultExport(root *sitter.Node, src []byte) (string, bool) {
	for i := 0; i < int(root.NamedChildCount()); i++ {
		stmt := root.NamedChild(i)
		if stmt.Type() != "export_statement" || !hasDefaultKeyword(stmt) {
			continue
		}

		before := string(src[:stmt.StartByte()])
		after := string(src[stmt.EndByte():])

		if decl := stmt.ChildByFieldName("declaration"); decl != nil {
			if name := decl.ChildByFieldName("name"); name != nil {
				// keep the declaration so it stays hoisted and referable by name
				return before + decl.Content(src) + after +
					"\n\nconst " + EntryPoint + " = " + name.Content(src) + ";", true
			}
			return before + "const " + EntryPoint + " = " + decl.Content(src) + ";" + after, true
		}

		if value := stmt.ChildByFieldName("value"); value != nil {
			return before + "const " + EntryPoint + " = " + value.Content(src) + ";" + after, true
		}
	}
	return "", false
}

func hasDefaultKeyword(stmt *sitter.Node) bool {
	for i := 0; i < int(stmt.ChildCount()); i++ {
		if stmt.Child(i).Type() == "default" {
			return true
		}
	}
	return false
}

// componentName returns the last top level declaration whose name looks like
// a component (capitalised), or the first declared name when none does.
func componentName(root *sitter.Node, src []byte) string {
	var first, component string
	for i := 0; i < int(root.NamedChildCount()); i++ {
		for _, name := range declaredNames(root.NamedChild(i), src) {
			if first == "" {
				first = name
			}
			if isComponentName(name) {
				component = name
			}
		}
	}
	if component != "" {
		return component
	}
	return first
}

func declaredNames(n *sitter.Node, src []byte) []string {
	switch n.Type() {
	case "function_declaration", "class_declaration", "generator_function_declaration":
		if name := n.ChildByFieldName("name"); name != nil {
			return []string{name.Content(src)}
		}
	case "lexical_declaration", "variable_declaration":
		var names []string
		for j := 0; j < int(n.NamedChildCount()); j++ {
			d := n.NamedChild(j)
			if d.Type() != "variable_declarator" {
				continue
			}
			if name := d.ChildByFieldName("name"); name != nil && name.Type() == "identifier" {
				names = append(names, name.Content(src))
			}
		}
		return names
	case "export_statement":
		if decl := n.ChildByFieldName("declaration"); decl != nil {
			return declaredNames(decl, src)
		}
	}
	return nil
}

func isComponentName(name string) bool {
	name = strings.TrimLeft(name, "_$")
	for _, r := range name {
		return unicode.IsUpper(r)
	}
	return false
}
