package ast

import "iter"

// Visitor defines the interface for AST traversal. If Visit returns nil,
// children of the node are not visited. Otherwise, the returned Visitor
// is used to visit children.
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses an AST in depth-first order. It starts by calling
// v.Visit(node); if the returned visitor w is not nil, Walk is invoked
// recursively with visitor w for each of the non-nil children of node.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, stmt := range n.Stmts {
			Walk(v, stmt)
		}

	// Statements
	case *Declare:
		if n.Name != nil {
			Walk(v, n.Name)
		}
		if n.Value != nil {
			Walk(v, n.Value)
		}
	case *Assign:
		if n.Name != nil {
			Walk(v, n.Name)
		}
		if n.Value != nil {
			Walk(v, n.Value)
		}
	case *Destructure:
		for _, e := range n.Elems {
			if e.Name != nil {
				Walk(v, e.Name)
			}
			if e.Default != nil {
				Walk(v, e.Default)
			}
		}
		if n.Value != nil {
			Walk(v, n.Value)
		}
	case *Block:
		for _, stmt := range n.Stmts {
			Walk(v, stmt)
		}

	// Error recovery nodes
	case *BadExpr:
		// No children
	case *BadStmt:
		// No children

	// Expressions
	case *Ident:
		// No children
	case *Int:
		// No children
	case *Float:
		// No children
	case *String:
		// No children
	case *Bool:
		// No children
	case *Nil:
		// No children
	case *Prefix:
		if n.X != nil {
			Walk(v, n.X)
		}
	case *Infix:
		if n.X != nil {
			Walk(v, n.X)
		}
		if n.Y != nil {
			Walk(v, n.Y)
		}
	case *Spread:
		if n.X != nil {
			Walk(v, n.X)
		}
	case *Index:
		if n.X != nil {
			Walk(v, n.X)
		}
		if n.Key != nil {
			Walk(v, n.Key)
		}
	case *Call:
		if n.Fun != nil {
			Walk(v, n.Fun)
		}
		for _, arg := range n.Args {
			Walk(v, arg)
		}
	case *List:
		for _, item := range n.Items {
			Walk(v, item)
		}
	}
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Inspect traverses an AST in depth-first order, calling f for each node.
// If f returns false, children of the node are not visited.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

// Preorder returns an iterator over all nodes of the tree rooted at node,
// in depth-first preorder.
func Preorder(node Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		ok := true
		Inspect(node, func(n Node) bool {
			if n != nil {
				ok = ok && yield(n)
			}
			return ok
		})
	}
}
