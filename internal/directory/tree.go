package directory

import (
	"regexp"
	"strings"
)

// Category is a node in the service classification forest. ID is assigned
// by the caller (UUIDs in production, readable ids in tests); Slug is
// cosmetic, used for display and routing only.
type Category struct {
	ID          string
	Name        string
	Slug        string
	Description string
	Icon        string
	ThemeColor  string
	ImageURL    string
}

type node struct {
	category Category
	parentID string
	children []string
}

// CategoryTree owns the category forest. Nodes live in an arena indexed
// by id; sibling order is the insertion order of the root and child lists.
type CategoryTree struct {
	nodes map[string]*node
	roots []string
}

// NewCategoryTree returns an empty forest.
func NewCategoryTree() *CategoryTree {
	return &CategoryTree{nodes: make(map[string]*node)}
}

// AddRoot appends a new top-level category. Inserting an id that already
// exists anywhere in the forest is a silent no-op, so the first node with
// a given id always wins on lookup.
func (t *CategoryTree) AddRoot(category Category) {
	if category.ID == "" {
		return
	}
	if _, exists := t.nodes[category.ID]; exists {
		return
	}
	t.nodes[category.ID] = &node{category: category}
	t.roots = append(t.roots, category.ID)
}

// AddChild appends a new sub-category under parentID. When the parent does
// not resolve the call is a silent no-op.
func (t *CategoryTree) AddChild(parentID string, category Category) {
	parent, ok := t.nodes[parentID]
	if !ok || category.ID == "" {
		return
	}
	if _, exists := t.nodes[category.ID]; exists {
		return
	}
	t.nodes[category.ID] = &node{category: category, parentID: parentID}
	parent.children = append(parent.children, category.ID)
}

// FindByID walks the forest pre-order (roots in insertion order, then each
// subtree) and returns the matching category.
func (t *CategoryTree) FindByID(id string) (Category, bool) {
	for _, rootID := range t.roots {
		if found, ok := t.findIn(rootID, id); ok {
			return found, true
		}
	}
	return Category{}, false
}

func (t *CategoryTree) findIn(currentID, targetID string) (Category, bool) {
	current, ok := t.nodes[currentID]
	if !ok {
		return Category{}, false
	}
	if currentID == targetID {
		return current.category, true
	}
	for _, childID := range current.children {
		if found, ok := t.findIn(childID, targetID); ok {
			return found, true
		}
	}
	return Category{}, false
}

// DescendantIDs returns the node's id plus every id in its subtree, in
// pre-order. An unknown id yields an empty result.
func (t *CategoryTree) DescendantIDs(id string) []string {
	if _, ok := t.nodes[id]; !ok {
		return nil
	}
	var ids []string
	t.collect(id, &ids)
	return ids
}

func (t *CategoryTree) collect(id string, ids *[]string) {
	current, ok := t.nodes[id]
	if !ok {
		return
	}
	*ids = append(*ids, id)
	for _, childID := range current.children {
		t.collect(childID, ids)
	}
}

// RemoveRoot detaches the root and its entire subtree. Unknown ids are a
// no-op.
func (t *CategoryTree) RemoveRoot(id string) {
	current, ok := t.nodes[id]
	if !ok || current.parentID != "" {
		return
	}
	t.roots = removeID(t.roots, id)
	t.prune(id)
}

// RemoveChild detaches childID from parentID along with its subtree. The
// call is a no-op unless childID is currently a child of parentID.
func (t *CategoryTree) RemoveChild(parentID, childID string) {
	parent, ok := t.nodes[parentID]
	if !ok {
		return
	}
	child, ok := t.nodes[childID]
	if !ok || child.parentID != parentID {
		return
	}
	parent.children = removeID(parent.children, childID)
	t.prune(childID)
}

func (t *CategoryTree) prune(id string) {
	current, ok := t.nodes[id]
	if !ok {
		return
	}
	for _, childID := range current.children {
		t.prune(childID)
	}
	delete(t.nodes, id)
}

// Roots returns the top-level categories in insertion order.
func (t *CategoryTree) Roots() []Category {
	out := make([]Category, 0, len(t.roots))
	for _, id := range t.roots {
		out = append(out, t.nodes[id].category)
	}
	return out
}

// Children returns the ordered sub-categories of id. Unknown ids yield an
// empty result.
func (t *CategoryTree) Children(id string) []Category {
	current, ok := t.nodes[id]
	if !ok {
		return nil
	}
	out := make([]Category, 0, len(current.children))
	for _, childID := range current.children {
		out = append(out, t.nodes[childID].category)
	}
	return out
}

// Len reports the total number of nodes in the forest.
func (t *CategoryTree) Len() int {
	return len(t.nodes)
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, candidate := range ids {
		if candidate != id {
			out = append(out, candidate)
		}
	}
	return out
}

var (
	slugStripRe    = regexp.MustCompile(`[^a-z0-9-]+`)
	slugCollapseRe = regexp.MustCompile(`-{2,}`)
)

// Slugify derives a display slug from a category name: lowercase,
// whitespace collapsed to "-", everything else stripped. Slugs are
// cosmetic and carry no uniqueness guarantee.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Join(strings.Fields(slug), "-")
	slug = slugStripRe.ReplaceAllString(slug, "")
	slug = slugCollapseRe.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
