package value

// StrVisitor is invoked on every Str node reachable from a Value tree. It
// may replace the visited Str wholesale by returning a non-nil
// replacement; a nil return leaves the node untouched.
type StrVisitor interface {
	VisitStr(s *Str) Value
}

// Walk performs a post-order traversal of v, replacing any Str node for
// which visitor.VisitStr returns non-nil. Walk returns the (possibly
// replaced) root value.
func Walk(v Value, visitor StrVisitor) Value {
	switch n := v.(type) {
	case *Str:
		if repl := visitor.VisitStr(n); repl != nil {
			return repl
		}
		return n
	case *ListItem:
		n.Val = Walk(n.Val, visitor)
		return n
	case *Pair:
		n.Key = Walk(n.Key, visitor)
		n.Val = Walk(n.Val, visitor)
		return n
	case *List:
		for i, item := range n.Items {
			n.Items[i] = Walk(item, visitor)
		}
		return n
	case *Constructor:
		n.List = Walk(n.List, visitor).(*List)
		return n
	case *RawList:
		for i, item := range n.Items {
			n.Items[i] = Walk(item, visitor)
		}
		return n
	default:
		// Ident, Num, RawStr carry no substructure to visit.
		return v
	}
}
