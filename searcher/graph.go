package searcher

import (
	"fmt"
	"strconv"

	"github.com/awalterschulze/gographviz"
)

// WithGraph makes Search render the top depth plies of the tree in DOT format into
// Report.Graph.
func WithGraph(depth int) Option {
	return func(s *settings) {
		s.graphDepth = max(depth, 0)
	}
}

// toDot renders the nodes of the tree down to depth. Node labels show the action, the visits
// and the win rate of the searching player.
func (t *tree[S, A]) toDot(depth int) (string, error) {
	g := gographviz.NewGraph()
	if err := g.SetName("G"); err != nil {
		return "", err
	}
	if err := g.SetDir(true); err != nil {
		return "", err
	}

	type item struct {
		node *node[A]
		id   string
	}
	next := 0
	newID := func() string {
		next++
		return "n" + strconv.Itoa(next)
	}

	rootID := newID()
	if err := g.AddNode("G", rootID, map[string]string{
		"shape": "box",
		"label": strconv.Quote(fmt.Sprintf("root\nvisits %d", t.root.visits)),
	}); err != nil {
		return "", err
	}

	queue := []item{{node: t.root, id: rootID}}
	for len(queue) > 0 {
		top := queue[0]
		queue = queue[1:]
		if top.node.depth >= depth {
			continue
		}
		for _, child := range top.node.children {
			id := newID()
			label := fmt.Sprintf("%v\nvisits %d\nwin rate %.3f", child.action, child.visits, child.rewards/float64(child.visits))
			if err := g.AddNode("G", id, map[string]string{"label": strconv.Quote(label)}); err != nil {
				return "", err
			}
			if err := g.AddEdge(top.id, id, true, nil); err != nil {
				return "", err
			}
			queue = append(queue, item{node: child, id: id})
		}
	}
	return g.String(), nil
}
