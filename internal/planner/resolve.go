package planner

import (
	"slices"
	"sort"
)

// ResolveItems lists the basis products at full rate followed by the products
// of every enabled option category at rate × normalised weight, each scaled
// for the instance's people count.
func ResolveItems(concept Concept, inst *Instance) []ResolvedItem {
	people := float64(inst.PeopleCount())
	weights := Normalize(inst.EnabledKeys(concept), optionWeights(inst))

	items := make([]ResolvedItem, 0, len(concept.Basis))
	for _, p := range concept.Basis {
		items = append(items, resolve(p, BasisKey, p.BasePer100, people))
	}
	for _, w := range weights {
		opt := concept.Option(w.Key)
		if opt == nil {
			continue
		}
		for _, p := range opt.Products {
			items = append(items, resolve(p, w.Key, finite(p.BasePer100)*(w.Percent/100), people))
		}
	}
	return items
}

func resolve(p Product, category string, rate, people float64) ResolvedItem {
	q := Scale(rate, people)
	return ResolvedItem{
		ProductID:           p.ID,
		Name:                p.Name,
		Unit:                p.Unit,
		Category:            category,
		BasePer100:          p.BasePer100,
		EffectiveBasePer100: finite(rate),
		Raw:                 q.Raw,
		Shown:               q.Shown,
	}
}

func optionWeights(inst *Instance) map[string]float64 {
	if inst == nil {
		return nil
	}
	return inst.OptionWeights
}

type aggregateKey struct {
	name string
	unit string
}

// Aggregate merges resolved items across concepts by exact (name, unit).
// Raw quantities are summed first and rounded up once per row, so independent
// per-concept rounding never inflates the order. The sum runs over the
// contributions in ascending order, which makes it independent of concept
// order. Rows are sorted by name, then unit; sources keep concept order.
func Aggregate(results []ConceptResult) []AggregateRow {
	index := make(map[aggregateKey]int)
	var rows []AggregateRow
	for _, block := range results {
		for _, it := range block.Items {
			key := aggregateKey{name: it.Name, unit: it.Unit}
			idx, ok := index[key]
			if !ok {
				idx = len(rows)
				index[key] = idx
				rows = append(rows, AggregateRow{Name: it.Name, Unit: it.Unit})
			}
			rows[idx].Sources = append(rows[idx].Sources, Source{
				Concept:  block.ConceptName,
				Category: it.Category,
				Raw:      it.Raw,
			})
		}
	}
	for i := range rows {
		rows[i].Raw = sumSources(rows[i].Sources)
		rows[i].Shown = ceilInt(rows[i].Raw)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Name != rows[j].Name {
			return rows[i].Name < rows[j].Name
		}
		return rows[i].Unit < rows[j].Unit
	})
	return rows
}

func sumSources(sources []Source) float64 {
	raws := make([]float64, len(sources))
	for i, src := range sources {
		raws[i] = src.Raw
	}
	slices.Sort(raws)
	var total float64
	for _, v := range raws {
		total += v
	}
	return total
}
