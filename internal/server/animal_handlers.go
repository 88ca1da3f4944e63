package server

import (
	"context"

	"menagerie/internal/cache"
	"menagerie/internal/models"
	"menagerie/internal/repository"
	"menagerie/internal/slug"

	"github.com/gofiber/fiber/v2"
)

type animalRequest struct {
	Animal struct {
		Title   string   `json:"title"`
		Body    string   `json:"body"`
		Image   string   `json:"image,omitempty"`
		TagList []string `json:"tagList,omitempty"`
	} `json:"animal"`
}

// projectAnimal builds the single-animal shape: tags, reduced author,
// and the viewer-relative favorited flag plus the global count.
func (s *Server) projectAnimal(ctx context.Context, a *models.Animal, viewerID uint) (models.AnimalResponse, error) {
	tags, err := s.tagRepo.NamesForAnimal(ctx, a.Slug)
	if err != nil {
		return models.AnimalResponse{}, err
	}
	count, err := s.favoriteRepo.Count(ctx, a.Slug)
	if err != nil {
		return models.AnimalResponse{}, err
	}
	favorited, err := s.favoriteRepo.IsFavorited(ctx, viewerID, a.Slug)
	if err != nil {
		return models.AnimalResponse{}, err
	}
	return models.NewAnimalResponse(*a, tags, favorited, count), nil
}

// projectAnimals builds the list shape with three batched queries
// instead of three per item.
func (s *Server) projectAnimals(ctx context.Context, animals []models.Animal, viewerID uint) ([]models.AnimalResponse, error) {
	slugs := make([]string, len(animals))
	for i, a := range animals {
		slugs[i] = a.Slug
	}

	tags, err := s.tagRepo.NamesForAnimals(ctx, slugs)
	if err != nil {
		return nil, err
	}
	counts, err := s.favoriteRepo.CountForAnimals(ctx, slugs)
	if err != nil {
		return nil, err
	}
	favorited, err := s.favoriteRepo.FavoritedForAnimals(ctx, viewerID, slugs)
	if err != nil {
		return nil, err
	}

	out := make([]models.AnimalResponse, len(animals))
	for i, a := range animals {
		out[i] = models.NewAnimalResponse(a, tags[a.Slug], favorited[a.Slug], counts[a.Slug])
	}
	return out, nil
}

// CreateAnimal handles POST /api/animals
func (s *Server) CreateAnimal(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var req animalRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("invalid request body"))
	}
	if req.Animal.Title == "" {
		return models.RespondWithError(c, models.NewValidationError("animal title is required"))
	}
	if req.Animal.Body == "" {
		return models.RespondWithError(c, models.NewValidationError("animal body is required"))
	}

	animalSlug := slug.Make(req.Animal.Title)
	if animalSlug == "" {
		return models.RespondWithError(c,
			models.NewValidationError("animal title must contain at least one letter or digit"))
	}

	animal := &models.Animal{
		Slug:     animalSlug,
		Title:    req.Animal.Title,
		Body:     req.Animal.Body,
		Image:    req.Animal.Image,
		AuthorID: userID,
	}

	if err := s.animalRepo.Create(ctx, animal, req.Animal.TagList); err != nil {
		return models.RespondWithError(c, err)
	}

	if len(req.Animal.TagList) > 0 {
		cache.Invalidate(ctx, s.redis, tagsCacheKey)
	}

	// Reload with the author for the response
	created, err := s.animalRepo.GetBySlug(ctx, animal.Slug)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	resp, err := s.projectAnimal(ctx, created, userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.AnimalEnvelope{Animal: resp})
}

// GetAnimal handles GET /api/animals/:slug
func (s *Server) GetAnimal(c *fiber.Ctx) error {
	ctx := c.UserContext()
	viewerID, _ := s.optionalUserID(c)

	animal, err := s.animalRepo.GetBySlug(ctx, c.Params("slug"))
	if err != nil {
		return models.RespondWithError(c, err)
	}

	resp, err := s.projectAnimal(ctx, animal, viewerID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(models.AnimalEnvelope{Animal: resp})
}

// ListAnimals handles GET /api/animals?tag=&author=&limit=&offset=
func (s *Server) ListAnimals(c *fiber.Ctx) error {
	ctx := c.UserContext()
	viewerID, _ := s.optionalUserID(c)

	filter := repository.AnimalFilter{
		Tag:    c.Query("tag"),
		Author: c.Query("author"),
		Limit:  c.QueryInt("limit", repository.DefaultPageSize),
		Offset: c.QueryInt("offset", 0),
	}

	animals, err := s.animalRepo.List(ctx, filter)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	resp, err := s.projectAnimals(ctx, animals, viewerID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(models.AnimalsEnvelope{Animals: resp})
}

// GetFeed handles GET /api/animals/feed
func (s *Server) GetFeed(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	limit := c.QueryInt("limit", repository.DefaultPageSize)
	offset := c.QueryInt("offset", 0)

	animals, err := s.animalRepo.Feed(ctx, userID, limit, offset)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	resp, err := s.projectAnimals(ctx, animals, userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(models.AnimalsEnvelope{Animals: resp})
}

// UpdateAnimal handles PATCH /api/animals/:slug. Only the author may
// update, only supplied fields change, and the slug never changes.
func (s *Server) UpdateAnimal(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	animal, err := s.animalRepo.GetBySlug(ctx, c.Params("slug"))
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if animal.AuthorID != userID {
		return models.RespondWithError(c,
			models.NewForbiddenError("you must be the author to modify this animal"))
	}

	var req animalRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("invalid request body"))
	}

	if req.Animal.Title != "" {
		animal.Title = req.Animal.Title
	}
	if req.Animal.Body != "" {
		animal.Body = req.Animal.Body
	}
	if req.Animal.Image != "" {
		animal.Image = req.Animal.Image
	}

	if err := s.animalRepo.Update(ctx, animal); err != nil {
		return models.RespondWithError(c, err)
	}

	resp, err := s.projectAnimal(ctx, animal, userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(models.AnimalEnvelope{Animal: resp})
}

// DeleteAnimal handles DELETE /api/animals/:slug
func (s *Server) DeleteAnimal(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	animal, err := s.animalRepo.GetBySlug(ctx, c.Params("slug"))
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if animal.AuthorID != userID {
		return models.RespondWithError(c,
			models.NewForbiddenError("you must be the author to delete this animal"))
	}

	if err := s.animalRepo.Delete(ctx, animal.Slug); err != nil {
		return models.RespondWithError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
