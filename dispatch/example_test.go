package dispatch_test

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/katalvlaran/lvgrid/compile"
	"github.com/katalvlaran/lvgrid/dispatch"
	"github.com/katalvlaran/lvgrid/model"
)

////////////////////////////////////////////////////////////////////////////////
// Example: heuristic dispatch
////////////////////////////////////////////////////////////////////////////////

// ExampleSolve_heuristic shares 90 MW of demand between a 100 MW and a 50 MW
// unit in proportion to their capacity.
func ExampleSolve_heuristic() {
	bus := &model.Bus{ID: uuid.New(), Name: "B1", Active: true, IsSlack: true}
	unit := func(name string, pmax float64) *model.Generator {
		return &model.Generator{
			Injection: model.Injection{ID: uuid.New(), Name: name, Bus: bus.ID, Active: true},
			Pmax:      pmax,
		}
	}
	c := &model.Circuit{
		Buses:      []*model.Bus{bus},
		Generators: []*model.Generator{unit("G1", 100), unit("G2", 50)},
		Loads: []*model.Load{{
			Injection: model.Injection{ID: uuid.New(), Name: "L1", Bus: bus.ID, Active: true},
			P:         90,
		}},
	}

	nc, _ := compile.Compile(c)
	p, _ := dispatch.Solve(nc, dispatch.WithMode(dispatch.ModeHeuristic))
	pg, _ := p.GeneratorPower()
	prices, _ := p.ShadowPrices()
	fmt.Println("generation:", pg[0])
	fmt.Println("prices:", prices[0])

	// Output:
	// generation: [60 30]
	// prices: [0]
}
