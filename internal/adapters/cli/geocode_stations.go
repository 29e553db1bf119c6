package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/fuelrouter-go/internal/adapters/geocoding"
	"github.com/andrescamacho/fuelrouter-go/internal/domain/shared"
	"github.com/andrescamacho/fuelrouter-go/internal/domain/station"
)

// NewGeocodeStationsCommand creates the geocode-stations command
func NewGeocodeStationsCommand() *cobra.Command {
	var (
		limit        int
		sleepSeconds float64
		force        bool
	)

	cmd := &cobra.Command{
		Use:   "geocode-stations",
		Short: "Geocode imported fuel stations using Nominatim",
		Long: `Geocode imported fuel stations using Nominatim.
Every attempt is recorded; stations that fail with a non-transient error are
flagged so later runs skip them unless --force is given.

Examples:
  fuelrouter geocode-stations --limit 50
  fuelrouter geocode-stations --force --sleep-seconds 0.5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 1 {
				limit = 1
			}
			if sleepSeconds < 0 {
				sleepSeconds = 0
			}

			rt, err := newRuntime()
			if err != nil {
				return err
			}

			ctx := context.Background()
			var stations []*station.Station
			if force {
				stations, err = rt.stations.FindAllForGeocode(ctx, limit)
			} else {
				stations, err = rt.stations.FindPendingGeocode(ctx, limit)
			}
			if err != nil {
				return err
			}
			if len(stations) == 0 {
				fmt.Println("No stations to geocode")
				return nil
			}

			geocoder := geocoding.NewClient(&rt.cfg.Geocoding, rt.logger)
			clock := shared.NewRealClock()
			sleep := time.Duration(sleepSeconds * float64(time.Second))

			geocoded := 0
			failed := 0
			for _, s := range stations {
				location, err := geocoder.Geocode(ctx, s.FullAddress(), "us")
				switch {
				case err == nil:
					s.Latitude = &location.Point.Latitude
					s.Longitude = &location.Point.Longitude
					s.IsGeocodeFailed = false
					geocoded++
				case isGeocodeFailure(err):
					s.IsGeocodeFailed = true
					failed++
				default:
					return err
				}

				s.GeocodeAttempts++
				now := clock.Now()
				s.LastGeocodedAt = &now
				if err := rt.stations.SaveGeocodeResult(ctx, s); err != nil {
					return err
				}

				if sleep > 0 {
					clock.Sleep(sleep)
				}
			}

			fmt.Printf("Geocode run complete: %d succeeded, %d failed (limit=%d)\n",
				geocoded, failed, limit)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Max stations to geocode in one run")
	cmd.Flags().Float64Var(&sleepSeconds, "sleep-seconds", 1.1, "Sleep interval between geocoding requests")
	cmd.Flags().BoolVar(&force, "force", false, "Re-geocode all stations, including already geocoded rows")

	return cmd
}

func isGeocodeFailure(err error) bool {
	var invalid *shared.InvalidLocationError
	var external *shared.ExternalServiceError
	return errors.As(err, &invalid) || errors.As(err, &external)
}
