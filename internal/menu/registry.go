package menu

import "strings"

const rootNodeID = "root"

// Node is one entry of the action tree. IDs are colon separated paths, so
// "product:edit" lives under an implicit "product" node.
type Node struct {
	ID          string
	Loader      Loader
	Action      Action
	Children    map[string]*Node
	MultiSelect bool
}

// multiSelectNodes lists the loaders whose levels toggle items instead of
// picking one.
var multiSelectNodes = map[string]bool{
	ActionCategories: true,
}

// Registry indexes the action tree by ID.
type Registry struct {
	root  *Node
	nodes map[string]*Node
}

// BuildRegistry assembles the tree from ActionLoaders and ActionHandlers. The
// root node lists the catalog's derived product rows.
func BuildRegistry() *Registry {
	r := &Registry{nodes: make(map[string]*Node)}
	r.root = r.node(rootNodeID)
	r.root.Loader = func(ctx Context) ([]Item, error) { return ProductItems(ctx.Products), nil }
	for id, loader := range ActionLoaders() {
		r.node(id).Loader = loader
	}
	for id, action := range ActionHandlers() {
		r.node(id).Action = action
	}
	return r
}

// node returns the node for id, creating it and any missing ancestors.
func (r *Registry) node(id string) *Node {
	if n, ok := r.nodes[id]; ok {
		return n
	}
	n := &Node{ID: id, Children: make(map[string]*Node), MultiSelect: multiSelectNodes[id]}
	r.nodes[id] = n
	if id != rootNodeID {
		parentID, key := parentKey(id)
		r.node(parentID).Children[key] = n
	}
	return n
}

func (r *Registry) Root() *Node { return r.root }

func (r *Registry) Find(id string) (*Node, bool) {
	n, ok := r.nodes[id]
	return n, ok
}

// Child resolves key below parentID.
func (r *Registry) Child(parentID, key string) (*Node, bool) {
	parent, ok := r.nodes[parentID]
	if !ok {
		return nil, false
	}
	n, ok := parent.Children[key]
	return n, ok
}

// parentKey splits an ID at its last colon. Top level IDs hang off the root.
func parentKey(id string) (string, string) {
	idx := strings.LastIndex(id, ":")
	if idx < 0 {
		return rootNodeID, id
	}
	return id[:idx], id[idx+1:]
}
