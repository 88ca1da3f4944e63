package repository

import (
	"context"

	"menagerie/internal/models"

	"gorm.io/gorm"
)

// TagRepository reads the tag index and the animal-tag link table.
// Writes happen inside AnimalRepository.Create so they share its
// transaction.
type TagRepository interface {
	ListNames(ctx context.Context) ([]string, error)
	NamesForAnimal(ctx context.Context, slug string) ([]string, error)
	NamesForAnimals(ctx context.Context, slugs []string) (map[string][]string, error)
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new tag repository.
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) ListNames(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).Model(&models.Tag{}).Order("name").Pluck("name", &names).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return names, nil
}

// NamesForAnimal returns the animal's tag names in insertion order.
func (r *tagRepository) NamesForAnimal(ctx context.Context, slug string) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&models.AnimalTag{}).
		Where("animal_slug = ?", slug).
		Order("id").
		Pluck("tag_name", &names).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return names, nil
}

// NamesForAnimals batches NamesForAnimal for list projections, one
// query regardless of page size.
func (r *tagRepository) NamesForAnimals(ctx context.Context, slugs []string) (map[string][]string, error) {
	result := make(map[string][]string, len(slugs))
	if len(slugs) == 0 {
		return result, nil
	}

	var links []models.AnimalTag
	err := r.db.WithContext(ctx).
		Where("animal_slug IN ?", slugs).
		Order("id").
		Find(&links).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	for _, l := range links {
		result[l.AnimalSlug] = append(result[l.AnimalSlug], l.TagName)
	}
	return result, nil
}
