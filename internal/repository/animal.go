package repository

import (
	"context"
	"errors"

	"menagerie/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultPageSize is applied when a list filter carries no limit.
const DefaultPageSize = 20

// AnimalFilter narrows List results. Zero values mean "no filter".
type AnimalFilter struct {
	Tag    string
	Author string
	Limit  int
	Offset int
}

// AnimalRepository defines the interface for animal data operations.
type AnimalRepository interface {
	Create(ctx context.Context, animal *models.Animal, tagNames []string) error
	GetBySlug(ctx context.Context, slug string) (*models.Animal, error)
	List(ctx context.Context, filter AnimalFilter) ([]models.Animal, error)
	Feed(ctx context.Context, viewerID uint, limit, offset int) ([]models.Animal, error)
	Update(ctx context.Context, animal *models.Animal) error
	Delete(ctx context.Context, slug string) error
}

type animalRepository struct {
	db *gorm.DB
}

// NewAnimalRepository creates a new animal repository.
func NewAnimalRepository(db *gorm.DB) AnimalRepository {
	return &animalRepository{db: db}
}

// Create persists the animal and links every tag name, creating tags on
// first use. All of it runs in one transaction: either the animal and
// all its tag links exist afterwards, or nothing does.
func (r *animalRepository) Create(ctx context.Context, animal *models.Animal, tagNames []string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Soft-deleted rows still occupy the slug, so check unscoped.
		var existing models.Animal
		err := tx.Unscoped().Where("slug = ?", animal.Slug).First(&existing).Error
		if err == nil {
			return models.NewConflictError("an animal with this slug already exists")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Create(animal).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return models.NewConflictError("an animal with this slug already exists")
			}
			return err
		}

		for _, name := range tagNames {
			tag := models.Tag{Name: name}
			if err := tx.FirstOrCreate(&tag, models.Tag{Name: name}).Error; err != nil {
				return err
			}
			link := models.AnimalTag{AnimalSlug: animal.Slug, TagName: name}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})

	var appErr *models.AppError
	if err != nil && !errors.As(err, &appErr) {
		return models.NewInternalError(err)
	}
	return err
}

func (r *animalRepository) GetBySlug(ctx context.Context, slug string) (*models.Animal, error) {
	var animal models.Animal
	err := r.db.WithContext(ctx).Preload("Author").Where("slug = ?", slug).First(&animal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Animal", slug)
		}
		return nil, models.NewInternalError(err)
	}
	return &animal, nil
}

// List returns a page of animals matching the optional tag and author
// filters, newest first. No filter combination is invalid.
func (r *animalRepository) List(ctx context.Context, filter AnimalFilter) ([]models.Animal, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}

	q := r.db.WithContext(ctx).Model(&models.Animal{}).Select("animals.*").Preload("Author")

	if filter.Tag != "" {
		q = q.Joins("JOIN animal_tags ON animal_tags.animal_slug = animals.slug").
			Where("animal_tags.tag_name = ?", filter.Tag)
	}
	if filter.Author != "" {
		q = q.Joins("JOIN users ON users.id = animals.author_id").
			Where("users.username = ?", filter.Author)
	}

	var animals []models.Animal
	err := q.Order("animals.created_at DESC").
		Limit(limit).
		Offset(filter.Offset).
		Find(&animals).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return animals, nil
}

// Feed returns animals authored by anyone the viewer follows, newest
// first. The following set is resolved with a parameterized subquery
// against the follows link table.
func (r *animalRepository) Feed(ctx context.Context, viewerID uint, limit, offset int) ([]models.Animal, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}

	followees := r.db.Model(&models.Follow{}).
		Select("followee_id").
		Where("follower_id = ?", viewerID)

	var animals []models.Animal
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("author_id IN (?)", followees).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&animals).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return animals, nil
}

func (r *animalRepository) Update(ctx context.Context, animal *models.Animal) error {
	if err := r.db.WithContext(ctx).Save(animal).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Delete removes the animal and cascades to its comments, tag links and
// favorite links in a single transaction.
func (r *animalRepository) Delete(ctx context.Context, slug string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("animal_slug = ?", slug).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("animal_slug = ?", slug).Delete(&models.AnimalTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("animal_slug = ?", slug).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		return tx.Where("slug = ?", slug).Delete(&models.Animal{}).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
