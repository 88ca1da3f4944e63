package repository

import (
	"context"

	"menagerie/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FavoriteRepository manages the user-favorites-animal link table.
type FavoriteRepository interface {
	Add(ctx context.Context, userID uint, slug string) error
	Remove(ctx context.Context, userID uint, slug string) error
	Count(ctx context.Context, slug string) (int64, error)
	IsFavorited(ctx context.Context, userID uint, slug string) (bool, error)
	CountForAnimals(ctx context.Context, slugs []string) (map[string]int64, error)
	FavoritedForAnimals(ctx context.Context, userID uint, slugs []string) (map[string]bool, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates a new favorite repository.
func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Add links the user to the animal. Idempotent: a second add of the
// same pair hits the unique index and is dropped.
func (r *favoriteRepository) Add(ctx context.Context, userID uint, slug string) error {
	fav := models.Favorite{UserID: userID, AnimalSlug: slug}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&fav).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Remove unlinks the pair. Removing an absent link is a no-op, not an error.
func (r *favoriteRepository) Remove(ctx context.Context, userID uint, slug string) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND animal_slug = ?", userID, slug).
		Delete(&models.Favorite{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *favoriteRepository) Count(ctx context.Context, slug string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("animal_slug = ?", slug).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// IsFavorited is a per-viewer membership test against the link table.
func (r *favoriteRepository) IsFavorited(ctx context.Context, userID uint, slug string) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ? AND animal_slug = ?", userID, slug).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *favoriteRepository) CountForAnimals(ctx context.Context, slugs []string) (map[string]int64, error) {
	result := make(map[string]int64, len(slugs))
	if len(slugs) == 0 {
		return result, nil
	}

	var rows []struct {
		AnimalSlug string
		Total      int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Select("animal_slug, COUNT(*) AS total").
		Where("animal_slug IN ?", slugs).
		Group("animal_slug").
		Scan(&rows).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	for _, row := range rows {
		result[row.AnimalSlug] = row.Total
	}
	return result, nil
}

func (r *favoriteRepository) FavoritedForAnimals(ctx context.Context, userID uint, slugs []string) (map[string]bool, error) {
	result := make(map[string]bool, len(slugs))
	if userID == 0 || len(slugs) == 0 {
		return result, nil
	}

	var favorited []string
	err := r.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ? AND animal_slug IN ?", userID, slugs).
		Pluck("animal_slug", &favorited).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	for _, slug := range favorited {
		result[slug] = true
	}
	return result, nil
}
