package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/GraiaProject/kayaku/ir"
	"github.com/GraiaProject/kayaku/token"
	"go.lsp.dev/protocol"
)

func (s *Server) Hover(ctx context.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.node == nil {
		return nil, nil
	}

	line := int(params.Position.Line)
	col := int(params.Position.Character)
	target := nodeAtPosition(doc.node, doc.positions, line, col)
	if target == nil {
		return nil, nil
	}

	text := hoverText(target)
	if text == "" {
		return nil, nil
	}

	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.Markdown,
			Value: text,
		},
	}, nil
}

// nodeAtPosition picks the node whose recorded position sits closest
// to the request on its line.
func nodeAtPosition(root *ir.Node, positions map[*ir.Node]*token.Pos, line, col int) *ir.Node {
	var best *ir.Node
	var bestCol int

	var visit func(*ir.Node)
	visit = func(n *ir.Node) {
		if n == nil {
			return
		}
		if pos := positions[n]; pos != nil {
			pLine, pCol := pos.LineCol()
			if pLine == line {
				if best == nil || abs(pCol-col) < abs(bestCol-col) {
					best, bestCol = n, pCol
				}
			}
		}
		for _, f := range n.Fields {
			visit(f)
		}
		for _, v := range n.Values {
			visit(v)
		}
	}
	visit(root)
	return best
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func hoverText(n *ir.Node) string {
	var parts []string

	if t := typeInfo(n); t != "" {
		parts = append(parts, fmt.Sprintf("**Type:** %s", t))
	}
	if v := valueInfo(n); v != "" {
		parts = append(parts, fmt.Sprintf("**Value:** %s", v))
	}
	if kp := n.KPath(); kp != "" {
		parts = append(parts, fmt.Sprintf("**Path:** `%s`", kp))
	}

	return strings.Join(parts, "\n\n")
}

func typeInfo(n *ir.Node) string {
	switch n.Type {
	case ir.NullType:
		return "null"
	case ir.BoolType:
		return "boolean"
	case ir.IntType, ir.HexType:
		return "integer"
	case ir.FloatType:
		return "float"
	case ir.StringType:
		return "string"
	case ir.IdentifierType:
		return "identifier"
	case ir.ArrayType:
		return "array"
	case ir.ObjectType:
		return "object"
	default:
		return ""
	}
}

func valueInfo(n *ir.Node) string {
	switch n.Type {
	case ir.BoolType:
		if n.Bool {
			return "`true`"
		}
		return "`false`"
	case ir.IntType, ir.HexType:
		return fmt.Sprintf("`%d`", n.Int64)
	case ir.FloatType:
		return fmt.Sprintf("`%g`", n.Float64)
	case ir.StringType, ir.IdentifierType:
		v := n.Str
		if len(v) > 50 {
			v = v[:50] + "..."
		}
		return fmt.Sprintf("`%s`", v)
	case ir.ArrayType:
		return fmt.Sprintf("array with %d elements", len(n.Values))
	case ir.ObjectType:
		return fmt.Sprintf("object with %d members", len(n.Fields))
	}
	return ""
}
