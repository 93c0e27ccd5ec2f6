package main

import (
	"context"
	"time"

	listingsrepo "staybook/internal/listings/repository"
	listingsservice "staybook/internal/listings/service"
	listingsvalidator "staybook/internal/listings/validator"
	"staybook/pkg/config"
	"staybook/pkg/model"
	"staybook/pkg/money"
)

const ServiceName = "seed"

// noBookings satisfies the listing service's booking dependency; seeding
// never deletes, so the count is irrelevant.
type noBookings struct{}

func (noBookings) CountForListing(ctx context.Context, listingID string) (int64, error) {
	return 0, nil
}

func main() {
	cfg := config.Load(ServiceName)

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}

	cfg.Log.Info("Seeding sample listings")

	cfg.SetMongo()
	defer cfg.Client.GracefulShutdown()

	listingService := listingsservice.NewListingService(
		listingsrepo.NewMongoListingRepository(cfg),
		noBookings{},
		listingsvalidator.NewListingValidator(),
		cfg,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	created := 0
	for _, l := range sampleListings() {
		listing := l
		if err := listingService.Create(ctx, &listing); err != nil {
			cfg.Log.Error("Failed to seed listing", "title", listing.Title, "error", err)
			continue
		}
		created++
	}

	cfg.Log.Info("Seeding complete", "created", created)
}

func sampleListings() []model.Listing {
	return []model.Listing{
		{
			Title:         "Cozy Downtown Apartment",
			Description:   "A bright one-bedroom apartment in the heart of the city, steps from cafes and museums.",
			Address:       "12 Rue de Rivoli",
			City:          "Paris",
			Country:       "France",
			ZipCode:       "75001",
			PropertyType:  "apartment",
			PricePerNight: money.MustParse("90.00"),
			MaxGuests:     2,
			Bedrooms:      1,
			Bathrooms:     1,
			Amenities:     "wifi, kitchen, heating",
			HostID:        "host-amelie",
		},
		{
			Title:         "Seaside Villa with Pool",
			Description:   "Spacious villa overlooking the Mediterranean, private pool and garden.",
			Address:       "4 Promenade des Anglais",
			City:          "Nice",
			Country:       "France",
			ZipCode:       "06000",
			PropertyType:  "villa",
			PricePerNight: money.MustParse("320.00"),
			MaxGuests:     8,
			Bedrooms:      4,
			Bathrooms:     3,
			Amenities:     "pool, wifi, parking, air conditioning",
			HostID:        "host-luc",
		},
		{
			Title:         "Mountain Cabin Retreat",
			Description:   "Rustic cabin with a wood stove and a view of the peaks. Perfect for hikers.",
			Address:       "88 Alpine Way",
			City:          "Chamonix",
			Country:       "France",
			ZipCode:       "74400",
			PropertyType:  "cabin",
			PricePerNight: money.MustParse("150.00"),
			MaxGuests:     4,
			Bedrooms:      2,
			Bathrooms:     1,
			Amenities:     "fireplace, parking, hiking trails",
			HostID:        "host-marta",
		},
		{
			Title:         "Modern Condo near the Park",
			Description:   "Newly renovated condo with floor-to-ceiling windows, a short walk from Central Park.",
			Address:       "250 W 82nd St",
			City:          "New York",
			Country:       "USA",
			ZipCode:       "10024",
			PropertyType:  "condo",
			PricePerNight: money.MustParse("275.50"),
			MaxGuests:     3,
			Bedrooms:      1,
			Bathrooms:     1,
			Amenities:     "wifi, gym, doorman, elevator",
			HostID:        "host-dan",
		},
		{
			Title:         "Historic House in the Old Town",
			Description:   "A restored 18th-century townhouse with original beams and a walled courtyard.",
			Address:       "7 Calle Mayor",
			City:          "Madrid",
			Country:       "Spain",
			ZipCode:       "28013",
			PropertyType:  "house",
			PricePerNight: money.MustParse("185.00"),
			MaxGuests:     6,
			Bedrooms:      3,
			Bathrooms:     2,
			Amenities:     "wifi, courtyard, washer",
			HostID:        "host-ines",
		},
	}
}
