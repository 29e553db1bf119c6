package planning

import (
	"sort"

	"github.com/andrescamacho/fuelrouter-go/internal/domain/shared"
)

// Optimize decides where and how much fuel to buy along the route. The
// baseline planner is a greedy price-horizon walk; the "ortools" tag selects
// the linear-program planner and transparently falls back to the baseline if
// the LP path fails for any reason.
func Optimize(candidates []CandidateStation, c Constraints, optimizer string) (*OptimizationResult, error) {
	ordered := make([]CandidateStation, len(candidates))
	copy(ordered, candidates)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Milepost < ordered[j].Milepost
	})

	if optimizer == OptimizerORTools {
		result, err := optimizeLP(ordered, c)
		if err == nil {
			return result, nil
		}
		// Solver absence, non-optimal status and the LP's own feasibility
		// pre-checks all degrade to the baseline planner, which re-derives
		// any infeasibility with the user-facing message.
		return optimizeBaseline(ordered, c)
	}

	return optimizeBaseline(ordered, c)
}

func optimizeBaseline(candidates []CandidateStation, c Constraints) (*OptimizationResult, error) {
	if c.RouteDistanceMiles <= c.StartFuelGallons*c.MPG+Epsilon {
		return &OptimizationResult{OptimizerUsed: OptimizerBaseline, Stops: []FuelStopPlan{}}, nil
	}

	if len(candidates) == 0 {
		return nil, shared.NewNoFeasibleFuelPlanError("no candidate stations available along route")
	}

	effectiveRange := c.EffectiveRangeMiles()
	currentFuel := c.StartFuelGallons
	previousMilepost := 0.0
	var stops []FuelStopPlan

	for index, st := range candidates {
		travelMiles := st.Milepost - previousMilepost
		if travelMiles < -Epsilon {
			continue
		}

		currentFuel -= travelMiles / c.MPG
		if currentFuel < -Epsilon {
			return nil, shared.NewNoFeasibleFuelPlanError("cannot reach next station with available fuel")
		}
		if currentFuel < 0 {
			currentFuel = 0
		}

		remainingDistance := c.RouteDistanceMiles - st.Milepost
		if remainingDistance <= currentFuel*c.MPG+Epsilon {
			previousMilepost = st.Milepost
			continue
		}

		var reachable []CandidateStation
		for _, next := range candidates[index+1:] {
			if next.Milepost-st.Milepost <= effectiveRange+Epsilon {
				reachable = append(reachable, next)
			}
		}
		canFinishFullTank := remainingDistance <= effectiveRange+Epsilon
		if len(reachable) == 0 && !canFinishFullTank {
			return nil, shared.NewNoFeasibleFuelPlanError("route contains a gap longer than the vehicle range")
		}

		// Horizon principle: buy only enough to reach somewhere cheaper.
		// The lookahead deliberately ignores fuel already in the tank when
		// deciding which stations count as reachable.
		targetMilepost := -1.0
		for _, next := range reachable {
			if next.PricePerGallon+Epsilon < st.PricePerGallon {
				targetMilepost = next.Milepost
				break
			}
		}
		if targetMilepost < 0 {
			if canFinishFullTank {
				targetMilepost = c.RouteDistanceMiles
			} else {
				targetMilepost = reachable[len(reachable)-1].Milepost
			}
		}

		requiredFuel := (targetMilepost - st.Milepost) / c.MPG
		if requiredFuel < 0 {
			requiredFuel = 0
		}
		gallonsToBuy := requiredFuel - currentFuel
		if gallonsToBuy < 0 {
			gallonsToBuy = 0
		}
		if room := c.TankCapacityGallons - currentFuel; gallonsToBuy > room {
			gallonsToBuy = room
		}

		if gallonsToBuy > Epsilon {
			fuelBefore := currentFuel
			fuelAfter := fuelBefore + gallonsToBuy
			stops = append(stops, FuelStopPlan{
				Station:           st,
				GallonsPurchased:  gallonsToBuy,
				Cost:              gallonsToBuy * st.PricePerGallon,
				FuelBeforeGallons: fuelBefore,
				FuelAfterGallons:  fuelAfter,
			})
			currentFuel = fuelAfter
		}

		previousMilepost = st.Milepost
	}

	remainingToFinish := c.RouteDistanceMiles - previousMilepost
	currentFuel -= remainingToFinish / c.MPG
	if currentFuel < -Epsilon {
		return nil, shared.NewNoFeasibleFuelPlanError("cannot reach destination with available stations and constraints")
	}

	result := &OptimizationResult{
		OptimizerUsed: OptimizerBaseline,
		Stops:         stops,
	}
	if result.Stops == nil {
		result.Stops = []FuelStopPlan{}
	}
	for _, stop := range stops {
		result.TotalGallonsPurchased += stop.GallonsPurchased
		result.TotalFuelCost += stop.Cost
	}
	return result, nil
}
