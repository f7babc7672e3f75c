// Package collection derives monthly photo collections from photo metadata.
// Collections are not persisted; they are recomputed on every call.
package collection

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/photovault/service/internal/photo"
)

// DefaultMinPhotos is the smallest month that is surfaced as a collection.
const DefaultMinPhotos = 4

// Collection is the set of photos created in one calendar month (UTC).
type Collection struct {
	Year   int           `json:"year"`
	Month  int           `json:"month"`
	Photos []photo.Photo `json:"photos"`
	Count  int           `json:"count"`
}

// PhotoSource lists the photos to group.
type PhotoSource interface {
	ListActivePhotos(ctx context.Context) ([]photo.Photo, error)
}

// Service computes monthly collections.
type Service struct {
	photos    PhotoSource
	minPhotos int
}

// NewService creates a collection Service. A minPhotos below 1 selects DefaultMinPhotos.
func NewService(photos PhotoSource, minPhotos int) *Service {
	if minPhotos < 1 {
		minPhotos = DefaultMinPhotos
	}
	return &Service{photos: photos, minPhotos: minPhotos}
}

// Monthly groups all non-deleted photos by creation month, drops months with
// fewer than the minimum number of photos and returns the newest month first.
func (s *Service) Monthly(ctx context.Context) ([]Collection, error) {
	photos, err := s.photos.ListActivePhotos(ctx)
	if err != nil {
		return nil, fmt.Errorf("monthly collections: %w", err)
	}
	return GroupByMonth(photos, s.minPhotos), nil
}

type monthKey struct {
	year  int
	month time.Month
}

// GroupByMonth buckets photos by the UTC year and month of CreatedAt.
// Deleted photos are ignored. Photos keep their input order within a bucket.
func GroupByMonth(photos []photo.Photo, minPhotos int) []Collection {
	buckets := map[monthKey][]photo.Photo{}
	for _, p := range photos {
		if p.IsDeleted {
			continue
		}
		created := p.CreatedAt.UTC()
		key := monthKey{year: created.Year(), month: created.Month()}
		buckets[key] = append(buckets[key], p)
	}

	collections := []Collection{}
	for key, group := range buckets {
		if len(group) < minPhotos {
			continue
		}
		collections = append(collections, Collection{
			Year:   key.year,
			Month:  int(key.month),
			Photos: group,
			Count:  len(group),
		})
	}

	sort.Slice(collections, func(i, j int) bool {
		if collections[i].Year != collections[j].Year {
			return collections[i].Year > collections[j].Year
		}
		return collections[i].Month > collections[j].Month
	})
	return collections
}
