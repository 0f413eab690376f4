package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildServiceForest() *CategoryTree {
	tree := NewCategoryTree()
	tree.AddRoot(Category{ID: "home", Name: "Home Services"})
	tree.AddChild("home", Category{ID: "handyman", Name: "Handyman"})
	tree.AddChild("handyman", Category{ID: "plumber", Name: "Plumber"})
	return tree
}

func TestFindByIDPreOrder(t *testing.T) {
	tree := buildServiceForest()
	tree.AddRoot(Category{ID: "beauty", Name: "Beauty"})

	found, ok := tree.FindByID("plumber")
	require.True(t, ok)
	assert.Equal(t, "Plumber", found.Name)

	found, ok = tree.FindByID("beauty")
	require.True(t, ok)
	assert.Equal(t, "Beauty", found.Name)

	_, ok = tree.FindByID("electrician")
	assert.False(t, ok)
}

func TestDescendantIDsClosure(t *testing.T) {
	tree := buildServiceForest()
	tree.AddChild("home", Category{ID: "cleaning", Name: "Cleaning"})

	assert.Equal(t, []string{"home", "handyman", "plumber", "cleaning"}, tree.DescendantIDs("home"))
	assert.Equal(t, []string{"handyman", "plumber"}, tree.DescendantIDs("handyman"))
	assert.Equal(t, []string{"plumber"}, tree.DescendantIDs("plumber"))
	assert.Empty(t, tree.DescendantIDs("missing"))
}

func TestAddChildMissingParentIsNoOp(t *testing.T) {
	tree := buildServiceForest()
	before := tree.Len()

	tree.AddChild("electrician", Category{ID: "wiring", Name: "Wiring"})

	assert.Equal(t, before, tree.Len())
	_, ok := tree.FindByID("wiring")
	assert.False(t, ok)
}

func TestAddDuplicateIDKeepsFirst(t *testing.T) {
	tree := buildServiceForest()
	tree.AddRoot(Category{ID: "home", Name: "Home Again"})

	found, ok := tree.FindByID("home")
	require.True(t, ok)
	assert.Equal(t, "Home Services", found.Name)
	assert.Len(t, tree.Roots(), 1)
}

func TestRemoveRootRemovesSubtree(t *testing.T) {
	tree := buildServiceForest()

	tree.RemoveRoot("home")

	_, ok := tree.FindByID("plumber")
	assert.False(t, ok)
	_, ok = tree.FindByID("handyman")
	assert.False(t, ok)
	assert.Empty(t, tree.Roots())
	assert.Zero(t, tree.Len())
}

func TestRemoveChildRemovesSubtree(t *testing.T) {
	tree := buildServiceForest()

	tree.RemoveChild("home", "handyman")

	_, ok := tree.FindByID("plumber")
	assert.False(t, ok)
	found, ok := tree.FindByID("home")
	require.True(t, ok)
	assert.Equal(t, "Home Services", found.Name)
	assert.Empty(t, tree.Children("home"))
}

func TestRemoveChildWrongParentIsNoOp(t *testing.T) {
	tree := buildServiceForest()

	tree.RemoveChild("home", "plumber")

	_, ok := tree.FindByID("plumber")
	assert.True(t, ok)
}

func TestRootsAndChildrenPreserveOrder(t *testing.T) {
	tree := NewCategoryTree()
	tree.AddRoot(Category{ID: "a", Name: "A"})
	tree.AddRoot(Category{ID: "b", Name: "B"})
	tree.AddChild("a", Category{ID: "a1", Name: "A1"})
	tree.AddChild("a", Category{ID: "a2", Name: "A2"})

	roots := tree.Roots()
	require.Len(t, roots, 2)
	assert.Equal(t, "a", roots[0].ID)
	assert.Equal(t, "b", roots[1].ID)

	children := tree.Children("a")
	require.Len(t, children, 2)
	assert.Equal(t, "a1", children[0].ID)
	assert.Equal(t, "a2", children[1].ID)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "home-services", Slugify("Home Services"))
	assert.Equal(t, "acs-heating", Slugify("  ACs  &  Heating "))
	assert.Equal(t, "plumber", Slugify("Plumber!"))
	assert.Equal(t, "", Slugify("   "))
}
