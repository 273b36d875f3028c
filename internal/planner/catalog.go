package planner

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

const (
	// DefaultConceptName names concepts created without a name.
	DefaultConceptName = "Nieuw concept"
	// DefaultConceptColor is used when a concept color is not a hex color.
	DefaultConceptColor = "#7dd3fc"
	// DefaultProductName names products created without a name.
	DefaultProductName = "Nieuw product"
	// DefaultProductUnit is the unit of products created without one.
	DefaultProductUnit = "stuks"
	// DefaultCategoryKey is derived from blank category labels.
	DefaultCategoryKey = "nieuweCategorie"
)

var (
	ErrConceptNotFound  = errors.New("concept not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrBasisCategory    = errors.New("the basis category cannot be removed")
	ErrInvalidCategory  = errors.New("invalid category key")
)

var hexColorPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Catalog is the admin-editable list of concepts.
type Catalog struct {
	Concepts []Concept `json:"concepts"`
}

// Find returns the concept with the given id, or nil.
func (c *Catalog) Find(id string) *Concept {
	if c == nil {
		return nil
	}
	for i := range c.Concepts {
		if c.Concepts[i].ID == id {
			return &c.Concepts[i]
		}
	}
	return nil
}

// FindOrEmpty returns a copy of the concept with the given id, falling back
// to EmptyConcept.
func (c *Catalog) FindOrEmpty(id string) Concept {
	if concept := c.Find(id); concept != nil {
		return *concept
	}
	return EmptyConcept
}

// AddConcept appends a concept with an empty basis.
func (c *Catalog) AddConcept(name, color string) Concept {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultConceptName
	}
	concept := Concept{
		ID:      NewID(),
		Name:    name,
		Color:   NormalizeColor(color, DefaultConceptColor),
		Basis:   []Product{},
		Options: []OptionCategory{},
	}
	c.Concepts = append(c.Concepts, concept)
	return concept
}

// RemoveConcept deletes a concept. Instances of it must be forgotten by the
// caller.
func (c *Catalog) RemoveConcept(id string) error {
	for i := range c.Concepts {
		if c.Concepts[i].ID == id {
			c.Concepts = append(c.Concepts[:i:i], c.Concepts[i+1:]...)
			return nil
		}
	}
	return ErrConceptNotFound
}

// NewProduct carries the admin input for a product before defaults apply.
type NewProduct struct {
	Name       string
	Unit       string
	BasePer100 float64
}

// AddProduct appends a product to a category of a concept, creating the
// option category when it does not exist yet.
func (c *Catalog) AddProduct(conceptID, categoryKey string, in NewProduct) (Product, error) {
	concept := c.Find(conceptID)
	if concept == nil {
		return Product{}, ErrConceptNotFound
	}
	categoryKey = strings.TrimSpace(categoryKey)
	if categoryKey == "" {
		return Product{}, ErrInvalidCategory
	}

	product := Product{
		ID:         NewID(),
		Name:       strings.TrimSpace(in.Name),
		Unit:       strings.TrimSpace(in.Unit),
		BasePer100: ClampNumber(in.BasePer100),
	}
	if product.Name == "" {
		product.Name = DefaultProductName
	}
	if product.Unit == "" {
		product.Unit = DefaultProductUnit
	}

	if categoryKey == BasisKey {
		concept.Basis = append(concept.Basis, product)
		return product, nil
	}
	opt := concept.Option(categoryKey)
	if opt == nil {
		concept.Options = append(concept.Options, OptionCategory{Key: categoryKey, Label: LabelForKey(categoryKey)})
		opt = &concept.Options[len(concept.Options)-1]
	}
	opt.Products = append(opt.Products, product)
	return product, nil
}

// RemoveProduct deletes a product from a category.
func (c *Catalog) RemoveProduct(conceptID, categoryKey, productID string) error {
	list, err := c.products(conceptID, categoryKey)
	if err != nil {
		return err
	}
	for i := range *list {
		if (*list)[i].ID == productID {
			*list = append((*list)[:i:i], (*list)[i+1:]...)
			return nil
		}
	}
	return ErrProductNotFound
}

// UpdateProductBase sets the rate per 100 people of a product, clamped at 0.
func (c *Catalog) UpdateProductBase(conceptID, categoryKey, productID string, value float64) (Product, error) {
	list, err := c.products(conceptID, categoryKey)
	if err != nil {
		return Product{}, err
	}
	for i := range *list {
		if (*list)[i].ID == productID {
			(*list)[i].BasePer100 = ClampNumber(value)
			return (*list)[i], nil
		}
	}
	return Product{}, ErrProductNotFound
}

// RemoveCategory deletes an option category. The basis category stays.
func (c *Catalog) RemoveCategory(conceptID, key string) error {
	if key == BasisKey {
		return ErrBasisCategory
	}
	concept := c.Find(conceptID)
	if concept == nil {
		return ErrConceptNotFound
	}
	for i := range concept.Options {
		if concept.Options[i].Key == key {
			concept.Options = append(concept.Options[:i:i], concept.Options[i+1:]...)
			return nil
		}
	}
	return ErrCategoryNotFound
}

func (c *Catalog) products(conceptID, categoryKey string) (*[]Product, error) {
	concept := c.Find(conceptID)
	if concept == nil {
		return nil, ErrConceptNotFound
	}
	if categoryKey == BasisKey {
		return &concept.Basis, nil
	}
	opt := concept.Option(categoryKey)
	if opt == nil {
		return nil, ErrCategoryNotFound
	}
	return &opt.Products, nil
}

// Clone returns a deep copy of the catalog.
func (c *Catalog) Clone() *Catalog {
	out := &Catalog{Concepts: make([]Concept, 0, len(c.Concepts))}
	for _, concept := range c.Concepts {
		cp := concept
		cp.Basis = append([]Product(nil), concept.Basis...)
		cp.Options = make([]OptionCategory, 0, len(concept.Options))
		for _, opt := range concept.Options {
			opt.Products = append([]Product(nil), opt.Products...)
			cp.Options = append(cp.Options, opt)
		}
		out.Concepts = append(out.Concepts, cp)
	}
	return out
}

// NewID returns a short random identifier.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// NormalizeColor returns value when it is a #rgb or #rrggbb color and
// fallback otherwise.
func NormalizeColor(value, fallback string) string {
	if hexColorPattern.MatchString(value) {
		return value
	}
	return fallback
}

// KeyFromLabel derives a camelCase category key from a free-text label.
func KeyFromLabel(label string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return r
		}
		return ' '
	}, label)

	words := strings.Fields(cleaned)
	if len(words) == 0 {
		return DefaultCategoryKey
	}
	var b strings.Builder
	for i, word := range words {
		r := []rune(word)
		if i == 0 {
			r[0] = unicode.ToLower(r[0])
		} else {
			r[0] = unicode.ToUpper(r[0])
		}
		b.WriteString(string(r))
	}
	return b.String()
}

// CategoryKey maps user input onto a category key: "basis" stays reserved,
// labels become camelCase keys and existing keys map onto themselves.
func CategoryKey(v string) string {
	v = strings.TrimSpace(v)
	if v == BasisKey {
		return v
	}
	return KeyFromLabel(v)
}

// LabelForKey turns a category key into a display label.
func LabelForKey(key string) string {
	if key == "parmeTruff" {
		return "Parme/Truff"
	}
	var b strings.Builder
	for i, r := range key {
		switch {
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r):
			b.WriteRune(' ')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
