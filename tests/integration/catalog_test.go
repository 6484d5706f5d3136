//go:build integration

package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/daniel-got/uas-paw-kelompok-6/internal/models"
	"github.com/daniel-got/uas-paw-kelompok-6/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test: every package returned for a price range lies inside it, in order
func TestListPackagesPriceRange(t *testing.T) {
	cleanTables()
	ctx := context.Background()
	svc := newServices(t)
	agent := newUser(t, models.RoleAgent, "Made")
	bali := createDestination(t, svc, agent, "Bali")
	lombok := createDestination(t, svc, agent, "Lombok")

	for i := 1; i <= 10; i++ {
		dest := bali
		if i%2 == 0 {
			dest = lombok
		}
		createPackage(t, svc, agent, dest, fmt.Sprintf("Trip %02d", i), float64(i*100))
	}

	ranges := []struct{ min, max float64 }{
		{0, 10000},
		{250, 750},
		{300, 300},
		{900, 100},
	}
	for _, r := range ranges {
		t.Run(fmt.Sprintf("%v-%v", r.min, r.max), func(t *testing.T) {
			pkgs, err := svc.catalog.ListPackages(ctx, service.PackageListFilter{
				MinPrice: strconv.FormatFloat(r.min, 'f', -1, 64),
				MaxPrice: strconv.FormatFloat(r.max, 'f', -1, 64),
				SortBy:   "price",
				Order:    "asc",
			})
			require.NoError(t, err)

			want := 0
			for i := 1; i <= 10; i++ {
				if p := float64(i * 100); p >= r.min && p <= r.max {
					want++
				}
			}
			assert.Len(t, pkgs, want)
			for i, p := range pkgs {
				assert.GreaterOrEqual(t, p.Price, r.min)
				assert.LessOrEqual(t, p.Price, r.max)
				if i > 0 {
					assert.LessOrEqual(t, pkgs[i-1].Price, p.Price)
				}
			}
		})
	}

	t.Run("destination filter", func(t *testing.T) {
		pkgs, err := svc.catalog.ListPackages(ctx, service.PackageListFilter{Destination: lombok.ID.String()})
		require.NoError(t, err)
		assert.Len(t, pkgs, 5)
		for _, p := range pkgs {
			assert.Equal(t, lombok.ID, p.DestinationID)
		}
	})

	t.Run("search", func(t *testing.T) {
		pkgs, err := svc.catalog.ListPackages(ctx, service.PackageListFilter{Query: "trip 07"})
		require.NoError(t, err)
		require.Len(t, pkgs, 1)
		assert.Equal(t, "Trip 07", pkgs[0].Name)
	})
}

// Test: duplicate destination name within a country → conflict
func TestDestinationUniqueness(t *testing.T) {
	cleanTables()
	svc := newServices(t)
	agent := newUser(t, models.RoleAgent, "Made")
	createDestination(t, svc, agent, "Bali")

	_, err := svc.catalog.CreateDestination(context.Background(), agent, service.CreateDestinationInput{
		Name:        "Bali",
		Description: "again",
		PhotoURL:    "https://img.example.com/bali2.jpg",
		Country:     "Indonesia",
	})
	assert.ErrorIs(t, err, service.ErrConflict)
}

// Test: package images survive the jsonb round-trip in order and resolve to stored files
func TestPackageImagesRoundTrip(t *testing.T) {
	cleanTables()
	ctx := context.Background()
	svc := newServices(t)
	agent := newUser(t, models.RoleAgent, "Made")
	dest := createDestination(t, svc, agent, "Bali")

	created, err := svc.catalog.CreatePackage(ctx, agent, service.CreatePackageInput{
		DestinationID: dest.ID.String(),
		Name:          "Ubud Gallery Tour",
		Duration:      3,
		Price:         320,
		Itinerary:     "Day 1 galleries, Day 2 markets",
		MaxTravelers:  8,
		ContactPhone:  "+62 811 000 000",
		Images:        []string{"https://cdn.example.com/cover.jpg"},
	}, []service.Upload{
		{Filename: "a.jpg", Data: []byte("first image")},
		{Filename: "b.png", Data: []byte("second image")},
	})
	require.NoError(t, err)
	require.Len(t, created.Images, 3)

	fetched, err := svc.catalog.GetPackage(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string(created.Images), []string(fetched.Images))
	assert.Equal(t, "https://cdn.example.com/cover.jpg", fetched.Images[0])
	assert.True(t, strings.HasSuffix(fetched.Images[1], ".jpg"))
	assert.True(t, strings.HasSuffix(fetched.Images[2], ".png"))

	for i, want := range [][]byte{[]byte("first image"), []byte("second image")} {
		url := fetched.Images[i+1]
		require.True(t, strings.HasPrefix(url, "/packages/"), url)
		data, err := os.ReadFile(filepath.Join(svc.files.Root(), filepath.FromSlash(strings.TrimPrefix(url, "/"))))
		require.NoError(t, err, "image %s should exist under the upload dir", url)
		assert.Equal(t, want, data)
	}

	listed, err := svc.catalog.ListAgentPackages(ctx, agent.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, []string(created.Images), []string(listed[0].Images))
}
