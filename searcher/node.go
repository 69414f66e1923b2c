package searcher

import (
	"fmt"
	"slices"
)

// node is a vertex of the search tree. The game state is not stored; it is recomputed by
// replaying actions from the root. A node owns its children, while parent only points back.
type node[A comparable] struct {
	parent   *node[A]
	action   A   // action that led here from parent, zero at the root
	untried  []A // legal actions not expanded yet
	children []*node[A]
	byAction map[A]*node[A]
	depth    int
	rewards  float64
	visits   int
}

func newNode[A comparable](parent *node[A], action A, legal []A) *node[A] {
	n := &node[A]{
		parent:   parent,
		action:   action,
		untried:  slices.Clone(legal),
		children: make([]*node[A], 0, len(legal)),
		byAction: make(map[A]*node[A], len(legal)),
	}
	if parent != nil {
		n.depth = parent.depth + 1
	}
	return n
}

// isFrontier reports whether the node still has actions to expand.
func (n *node[A]) isFrontier() bool {
	return len(n.untried) > 0
}

// addChild moves the i-th untried action into a new child whose own untried actions are legal.
func (n *node[A]) addChild(i int, legal []A) *node[A] {
	action := n.untried[i]
	if _, ok := n.byAction[action]; ok {
		panic(fmt.Sprintf("action %v expanded twice", action))
	}
	n.untried = slices.Delete(n.untried, i, i+1)

	child := newNode(n, action, legal)
	n.children = append(n.children, child)
	n.byAction[action] = child
	return child
}

// child returns the child reached by action, or nil if it is not expanded.
func (n *node[A]) child(action A) *node[A] {
	return n.byAction[action]
}

// update records one rollout outcome and returns the parent, nil at the root.
func (n *node[A]) update(outcome float64) *node[A] {
	n.rewards += outcome
	n.visits++
	return n.parent
}

// rank orders the children by UCT value, best first. Equal values keep insertion order.
// mover tells whether the searching player is the one choosing among the children.
func (n *node[A]) rank(exploration float64, mover bool) []*node[A] {
	policy := newUCT(exploration, n.visits)

	type scored struct {
		child *node[A]
		value float64
	}
	candidates := make([]scored, len(n.children))
	for i, child := range n.children {
		candidates[i] = scored{child: child, value: policy.evaluate(child.rewards, child.visits, mover)}
	}
	slices.SortStableFunc(candidates, func(a, b scored) int {
		switch {
		case a.value > b.value:
			return -1
		case a.value < b.value:
			return 1
		}
		return 0
	})

	ranked := make([]*node[A], len(candidates))
	for i, c := range candidates {
		ranked[i] = c.child
	}
	return ranked
}

// size counts the nodes of the subtree rooted at n.
func (n *node[A]) size() int {
	count := 0
	stack := []*node[A]{n}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		count++
		stack = append(stack, top.children...)
	}
	return count
}
