package planning

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/andrescamacho/fuelrouter-go/internal/domain/geo"
	"github.com/andrescamacho/fuelrouter-go/internal/domain/planning"
	"github.com/andrescamacho/fuelrouter-go/internal/domain/station"
)

const (
	maxPolylinePoints = 1500
	scanBatchSize     = 1000
	bucketWidthMiles  = 25.0
	bucketKeepCount   = 3
)

// Selector projects catalog stations onto a route polyline and returns the
// candidates lying within the requested corridor, annotated with milepost and
// perpendicular distance.
type Selector struct {
	stations      station.Repository
	maxCandidates int
}

// NewSelector creates a station selector backed by the given catalog store.
func NewSelector(stations station.Repository, maxCandidates int) *Selector {
	return &Selector{stations: stations, maxCandidates: maxCandidates}
}

// Select returns candidate stations within corridorMiles of the route, ordered
// by (milepost, price) ascending and capped at the configured maximum.
func (s *Selector) Select(
	ctx context.Context,
	route *planning.RouteData,
	corridorMiles float64,
) ([]planning.CandidateStation, error) {
	if len(route.Coordinates) < 2 {
		return []planning.CandidateStation{}, nil
	}

	coordinates := simplifyPolyline(route.Coordinates, maxPolylinePoints)
	cumulative := buildCumulativeMiles(coordinates)
	bounds := polylineBounds(coordinates, corridorMiles/geo.MilesPerDegreeLat)

	var candidates []planning.CandidateStation
	err := s.stations.FindGeocodedInBounds(ctx, bounds, scanBatchSize, func(batch []*station.Station) error {
		for _, st := range batch {
			if st.Latitude == nil || st.Longitude == nil {
				continue
			}
			distance, milepost := projectStation(*st.Longitude, *st.Latitude, coordinates, cumulative)
			if distance > corridorMiles {
				continue
			}
			candidates = append(candidates, planning.CandidateStation{
				StationID:              st.ID,
				StationName:            st.Name,
				Address:                st.Address,
				City:                   st.City,
				State:                  st.State,
				Latitude:               *st.Latitude,
				Longitude:              *st.Longitude,
				PricePerGallon:         st.RetailPrice,
				Milepost:               milepost,
				DistanceFromRouteMiles: distance,
			})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan stations along route: %w", err)
	}

	return reduceCandidates(candidates, s.maxCandidates), nil
}

// simplifyPolyline strides long polylines down to at most maxPoints, always
// keeping the final point so the milepost scale reaches the destination.
func simplifyPolyline(coordinates [][2]float64, maxPoints int) [][2]float64 {
	if len(coordinates) <= maxPoints {
		return coordinates
	}

	step := len(coordinates) / maxPoints
	if step < 1 {
		step = 1
	}
	simplified := make([][2]float64, 0, len(coordinates)/step+2)
	for i := 0; i < len(coordinates); i += step {
		simplified = append(simplified, coordinates[i])
	}
	last := coordinates[len(coordinates)-1]
	if simplified[len(simplified)-1] != last {
		simplified = append(simplified, last)
	}
	return simplified
}

func buildCumulativeMiles(coordinates [][2]float64) []float64 {
	cumulative := make([]float64, len(coordinates))
	for i := 1; i < len(coordinates); i++ {
		prev, curr := coordinates[i-1], coordinates[i]
		cumulative[i] = cumulative[i-1] + geo.HaversineMiles(prev[1], prev[0], curr[1], curr[0])
	}
	return cumulative
}

func polylineBounds(coordinates [][2]float64, marginDegrees float64) station.Bounds {
	bounds := station.Bounds{
		MinLatitude:  math.Inf(1),
		MaxLatitude:  math.Inf(-1),
		MinLongitude: math.Inf(1),
		MaxLongitude: math.Inf(-1),
	}
	for _, coord := range coordinates {
		bounds.MinLongitude = math.Min(bounds.MinLongitude, coord[0])
		bounds.MaxLongitude = math.Max(bounds.MaxLongitude, coord[0])
		bounds.MinLatitude = math.Min(bounds.MinLatitude, coord[1])
		bounds.MaxLatitude = math.Max(bounds.MaxLatitude, coord[1])
	}
	bounds.MinLatitude -= marginDegrees
	bounds.MaxLatitude += marginDegrees
	bounds.MinLongitude -= marginDegrees
	bounds.MaxLongitude += marginDegrees
	return bounds
}

// projectStation finds the closest point on the polyline to the station. Each
// segment is projected in a local equirectangular frame anchored at the
// segment midpoint's latitude, which is accurate over segment-scale distances.
func projectStation(
	stationLon, stationLat float64,
	coordinates [][2]float64,
	cumulative []float64,
) (distanceMiles, milepost float64) {
	bestDistance := math.Inf(1)
	bestMilepost := 0.0

	for i := 0; i < len(coordinates)-1; i++ {
		startLon, startLat := coordinates[i][0], coordinates[i][1]
		endLon, endLat := coordinates[i+1][0], coordinates[i+1][1]
		refLat := (startLat + endLat) / 2.0

		startX, startY := geo.LonLatToMilesXY(startLon, startLat, refLat)
		endX, endY := geo.LonLatToMilesXY(endLon, endLat, refLat)
		pointX, pointY := geo.LonLatToMilesXY(stationLon, stationLat, refLat)

		vectorX := endX - startX
		vectorY := endY - startY
		normSq := vectorX*vectorX + vectorY*vectorY
		if normSq == 0 {
			continue
		}

		t := ((pointX-startX)*vectorX + (pointY-startY)*vectorY) / normSq
		t = math.Max(0.0, math.Min(1.0, t))

		projectedX := startX + t*vectorX
		projectedY := startY + t*vectorY
		distance := math.Hypot(pointX-projectedX, pointY-projectedY)

		if distance < bestDistance {
			bestDistance = distance
			bestMilepost = cumulative[i] + t*(cumulative[i+1]-cumulative[i])
		}
	}

	return bestDistance, bestMilepost
}

// reduceCandidates caps the candidate set while keeping spatial coverage:
// 25-mile milepost buckets each keep their three cheapest stations, and only
// if that still exceeds the cap are the globally cheapest taken.
func reduceCandidates(
	candidates []planning.CandidateStation,
	maxCandidates int,
) []planning.CandidateStation {
	sortByMilepostThenPrice(candidates)
	if len(candidates) <= maxCandidates {
		return candidates
	}

	buckets := make(map[int][]planning.CandidateStation)
	for _, candidate := range candidates {
		bucket := int(candidate.Milepost / bucketWidthMiles)
		buckets[bucket] = append(buckets[bucket], candidate)
	}

	reduced := make([]planning.CandidateStation, 0, len(buckets)*bucketKeepCount)
	for _, bucket := range buckets {
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].PricePerGallon < bucket[j].PricePerGallon
		})
		if len(bucket) > bucketKeepCount {
			bucket = bucket[:bucketKeepCount]
		}
		reduced = append(reduced, bucket...)
	}

	if len(reduced) > maxCandidates {
		sort.SliceStable(reduced, func(i, j int) bool {
			return reduced[i].PricePerGallon < reduced[j].PricePerGallon
		})
		reduced = reduced[:maxCandidates]
	}

	sortByMilepostThenPrice(reduced)
	return reduced
}

func sortByMilepostThenPrice(candidates []planning.CandidateStation) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Milepost != candidates[j].Milepost {
			return candidates[i].Milepost < candidates[j].Milepost
		}
		return candidates[i].PricePerGallon < candidates[j].PricePerGallon
	})
}
