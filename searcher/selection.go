package searcher

import "errors"

var errExhausted = errors.New("tree is fully explored")

// frame is one level of the selection descent.
type frame[S any, A comparable] struct {
	node   *node[A]
	state  S
	ranked []*node[A] // children by UCT value, set on first visit
	next   int        // next candidate in ranked
	seen   bool
}

// selectFrontier descends from the root to a node with untried actions and returns it with
// the state reached there. At each level the children are tried best UCT value first; when a
// child's subtree holds no frontier the next candidate is tried. ok is false when the whole
// tree is exhausted.
func (t *tree[S, A]) selectFrontier(state S) (leaf *node[A], leafState S, ok bool) {
	stack := []frame[S, A]{{node: t.root, state: state}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if !top.seen {
			top.seen = true
			if top.node.isFrontier() {
				return top.node, top.state, true
			}
			if len(top.node.children) > 0 {
				mover := t.engine.CurrentPlayer(top.state) == t.identity
				top.ranked = top.node.rank(t.exploration, mover)
			}
		}

		if top.next == len(top.ranked) { // Subtree exhausted
			stack = stack[:len(stack)-1]
			continue
		}
		child := top.ranked[top.next]
		top.next++
		childState := t.engine.NextState(top.state, child.action)
		stack = append(stack, frame[S, A]{node: child, state: childState})
	}
	return nil, leafState, false
}
