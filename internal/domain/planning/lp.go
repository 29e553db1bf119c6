package planning

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/andrescamacho/fuelrouter-go/internal/domain/shared"
)

// Purchases below this many gallons are solver noise and dropped.
const minPurchaseGallons = 1e-4

// optimizeLP formulates the plan as a linear program over the points
// [0, s1, ..., sk, D] and solves it with gonum's simplex method.
//
// Standard-form variables, in column order:
//
//	fuel[i]  fuel in tank arriving at point i, in [0, T] via station rows
//	buy[j]   gallons bought at station j, j = 1..k
//	slack[j] tank headroom at station j, closing fuel[j] + buy[j] <= T
//
// Rows: fuel[0] = F0; per-segment fuel balance; per-station tank capacity.
// Nonnegativity of fuel[i] is what forbids running dry.
func optimizeLP(candidates []CandidateStation, c Constraints) (*OptimizationResult, error) {
	if c.RouteDistanceMiles <= c.StartFuelGallons*c.MPG+Epsilon {
		return &OptimizationResult{OptimizerUsed: OptimizerORTools, Stops: []FuelStopPlan{}}, nil
	}

	if len(candidates) == 0 {
		return nil, shared.NewNoFeasibleFuelPlanError("no candidate stations available along route")
	}

	effectiveRange := c.EffectiveRangeMiles()
	points := make([]float64, 0, len(candidates)+2)
	points = append(points, 0.0)
	for _, st := range candidates {
		points = append(points, st.Milepost)
	}
	points = append(points, c.RouteDistanceMiles)

	for i := 0; i < len(points)-1; i++ {
		if points[i+1]+Epsilon < points[i] {
			return nil, shared.NewNoFeasibleFuelPlanError("stations are not ordered correctly")
		}
		if points[i+1]-points[i] > effectiveRange+Epsilon {
			return nil, shared.NewNoFeasibleFuelPlanError("route contains a gap longer than the vehicle range")
		}
	}

	k := len(candidates)
	nPoints := len(points)
	fuelCol := func(i int) int { return i }
	buyCol := func(j int) int { return nPoints + j - 1 }   // j in 1..k
	slackCol := func(j int) int { return nPoints + k + j - 1 }
	nVars := nPoints + 2*k
	nRows := 1 + (nPoints - 1) + k

	a := mat.NewDense(nRows, nVars, nil)
	bVec := make([]float64, nRows)
	obj := make([]float64, nVars)

	row := 0

	// Starting fuel.
	a.Set(row, fuelCol(0), 1)
	bVec[row] = c.StartFuelGallons
	row++

	// Fuel balance between consecutive points:
	// fuel[i+1] - fuel[i] - buy[i] = -travel/mpg (buy term only at stations).
	for i := 0; i < nPoints-1; i++ {
		a.Set(row, fuelCol(i+1), 1)
		a.Set(row, fuelCol(i), -1)
		if i >= 1 && i <= k {
			a.Set(row, buyCol(i), -1)
		}
		bVec[row] = -(points[i+1] - points[i]) / c.MPG
		row++
	}

	// Tank capacity after each purchase: fuel[j] + buy[j] + slack[j] = T.
	for j := 1; j <= k; j++ {
		a.Set(row, fuelCol(j), 1)
		a.Set(row, buyCol(j), 1)
		a.Set(row, slackCol(j), 1)
		bVec[row] = c.TankCapacityGallons
		row++
	}

	for j, st := range candidates {
		obj[buyCol(j+1)] = st.PricePerGallon
	}

	_, x, err := lp.Simplex(obj, a, bVec, 0, nil)
	if err != nil {
		return nil, fmt.Errorf("fuel plan LP solve failed: %w", err)
	}

	result := &OptimizationResult{
		OptimizerUsed: OptimizerORTools,
		Stops:         []FuelStopPlan{},
	}
	for j, st := range candidates {
		gallons := x[buyCol(j+1)]
		if gallons <= minPurchaseGallons {
			continue
		}
		fuelBefore := x[fuelCol(j+1)]
		stop := FuelStopPlan{
			Station:           st,
			GallonsPurchased:  gallons,
			Cost:              gallons * st.PricePerGallon,
			FuelBeforeGallons: fuelBefore,
			FuelAfterGallons:  fuelBefore + gallons,
		}
		result.Stops = append(result.Stops, stop)
		result.TotalGallonsPurchased += gallons
		result.TotalFuelCost += stop.Cost
	}

	return result, nil
}
