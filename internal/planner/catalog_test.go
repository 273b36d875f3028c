package planner

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddConceptDefaults(t *testing.T) {
	t.Parallel()

	catalog := &Catalog{}
	c := catalog.AddConcept("  ", "blue")
	assert.Equal(t, DefaultConceptName, c.Name)
	assert.Equal(t, DefaultConceptColor, c.Color)
	assert.NotEmpty(t, c.ID)
	assert.Empty(t, c.Basis)

	tacos := catalog.AddConcept(" Tacos ", "#abc")
	assert.Equal(t, "Tacos", tacos.Name)
	assert.Equal(t, "#abc", tacos.Color)
	assert.NotEqual(t, c.ID, tacos.ID)
	assert.Len(t, catalog.Concepts, 2)
}

func TestRemoveConcept(t *testing.T) {
	t.Parallel()

	catalog := testCatalog()
	require.NoError(t, catalog.RemoveConcept("b"))
	assert.Nil(t, catalog.Find("b"))
	assert.ErrorIs(t, catalog.RemoveConcept("b"), ErrConceptNotFound)
}

func TestAddProduct(t *testing.T) {
	t.Parallel()

	catalog := testCatalog()

	p, err := catalog.AddProduct("a", BasisKey, NewProduct{Name: " ", Unit: "", BasePer100: -4})
	require.NoError(t, err)
	assert.Equal(t, DefaultProductName, p.Name)
	assert.Equal(t, DefaultProductUnit, p.Unit)
	assert.Equal(t, 0.0, p.BasePer100)
	assert.Len(t, catalog.Find("a").Basis, 2)

	p, err = catalog.AddProduct("a", "veganSpecial", NewProduct{Name: "Tofu", Unit: "kg", BasePer100: math.NaN()})
	require.NoError(t, err)
	assert.Equal(t, 0.0, p.BasePer100)
	opt := catalog.Find("a").Option("veganSpecial")
	require.NotNil(t, opt)
	assert.Equal(t, "Vegan Special", opt.Label)
	assert.Equal(t, []string{"optA", "optB", "veganSpecial"}, catalog.Find("a").OptionKeys())

	_, err = catalog.AddProduct("a", "optA", NewProduct{Name: "Extra", Unit: "zak", BasePer100: 2})
	require.NoError(t, err)
	assert.Len(t, catalog.Find("a").Option("optA").Products, 2)

	_, err = catalog.AddProduct("missing", BasisKey, NewProduct{})
	assert.ErrorIs(t, err, ErrConceptNotFound)

	_, err = catalog.AddProduct("a", " ", NewProduct{})
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestRemoveProduct(t *testing.T) {
	t.Parallel()

	catalog := testCatalog()
	require.NoError(t, catalog.RemoveProduct("a", "optA", "a2"))
	assert.Empty(t, catalog.Find("a").Option("optA").Products)

	assert.ErrorIs(t, catalog.RemoveProduct("a", "optA", "a2"), ErrProductNotFound)
	assert.ErrorIs(t, catalog.RemoveProduct("a", "nope", "a2"), ErrCategoryNotFound)
	assert.ErrorIs(t, catalog.RemoveProduct("zz", BasisKey, "a1"), ErrConceptNotFound)
}

func TestUpdateProductBase(t *testing.T) {
	t.Parallel()

	catalog := testCatalog()

	p, err := catalog.UpdateProductBase("a", BasisKey, "a1", 4.5)
	require.NoError(t, err)
	assert.Equal(t, 4.5, p.BasePer100)
	assert.Equal(t, 4.5, catalog.Find("a").Basis[0].BasePer100)

	p, err = catalog.UpdateProductBase("a", "optB", "a3", -1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, p.BasePer100)

	_, err = catalog.UpdateProductBase("a", "optB", "nope", 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestRemoveCategory(t *testing.T) {
	t.Parallel()

	catalog := testCatalog()
	assert.ErrorIs(t, catalog.RemoveCategory("a", BasisKey), ErrBasisCategory)
	require.NoError(t, catalog.RemoveCategory("a", "optA"))
	assert.Equal(t, []string{"optB"}, catalog.Find("a").OptionKeys())
	assert.ErrorIs(t, catalog.RemoveCategory("a", "optA"), ErrCategoryNotFound)
	assert.ErrorIs(t, catalog.RemoveCategory("nope", "optA"), ErrConceptNotFound)
}

func TestRemoveCategoryDropsInstanceState(t *testing.T) {
	t.Parallel()

	catalog := testCatalog()
	e := activeEvent(t, catalog, map[string]int{"a": 100}, "a")
	require.True(t, e.SetOptionEnabled(catalog, "a", "optA", true))
	require.True(t, e.SetOptionEnabled(catalog, "a", "optB", true))

	require.NoError(t, catalog.RemoveCategory("a", "optA"))
	e.Reconcile(catalog)

	inst := e.Instance("a")
	assert.NotContains(t, inst.EnabledOptions, "optA")
	assert.NotContains(t, inst.OptionWeights, "optA")

	weights := e.Results(catalog)[0].Weights
	require.Len(t, weights, 1)
	assert.Equal(t, Weight{Key: "optB", Percent: 100}, weights[0])
}

func TestClone(t *testing.T) {
	t.Parallel()

	catalog := testCatalog()
	clone := catalog.Clone()
	clone.Concepts[0].Basis[0].Name = "Changed"
	clone.Concepts[0].Options[0].Products[0].BasePer100 = 99

	assert.Equal(t, "Friet", catalog.Concepts[0].Basis[0].Name)
	assert.Equal(t, 10.0, catalog.Concepts[0].Options[0].Products[0].BasePer100)
}

func TestNormalizeColor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "#fff", NormalizeColor("#fff", "#000"))
	assert.Equal(t, "#A1B2C3", NormalizeColor("#A1B2C3", "#000"))
	assert.Equal(t, "#000", NormalizeColor("#abcd", "#000"))
	assert.Equal(t, "#000", NormalizeColor("red", "#000"))
}

func TestKeyFromLabel(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Vegan special!":  "veganSpecial",
		"loaded kip":      "loadedKip",
		"  Rendang stoof": "rendangStoof",
		"":                DefaultCategoryKey,
		"!!!":             DefaultCategoryKey,
		"Crème brûlée":    "crMeBrLE",
	}
	for in, want := range tests {
		assert.Equal(t, want, KeyFromLabel(in), "label %q", in)
	}
}

func TestCategoryKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, BasisKey, CategoryKey(" basis "))
	assert.Equal(t, "loadedKip", CategoryKey("Loaded Kip"))
	assert.Equal(t, "loadedKip", CategoryKey("loadedKip"))
}

func TestLabelForKey(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"parmeTruff":  "Parme/Truff",
		"loadedKip":   "Loaded Kip",
		"tuna":        "Tuna",
		"cheeseOnion": "Cheese Onion",
	}
	for in, want := range tests {
		assert.Equal(t, want, LabelForKey(in), "key %q", in)
	}
}

func TestDefaultCatalog(t *testing.T) {
	t.Parallel()

	catalog := DefaultCatalog()
	require.Len(t, catalog.Concepts, 6)

	gemaal := catalog.Find("concept-gemaal")
	require.NotNil(t, gemaal)
	assert.Equal(t, []string{"parmeTruff", "loadedKip", "rendangStoof"}, gemaal.OptionKeys())
	assert.Equal(t, "Parme/Truff", gemaal.Options[0].Label)
	assert.Equal(t, Product{ID: gemaal.Basis[0].ID, Name: "Friet", Unit: "doos", BasePer100: 3}, gemaal.Basis[0])

	storm := catalog.Find("concept-storm")
	require.NotNil(t, storm)
	require.Len(t, storm.Basis, 1)
	assert.Equal(t, 100.0, storm.Basis[0].BasePer100)

	assert.Empty(t, catalog.Find("concept-burger").Basis)
}
