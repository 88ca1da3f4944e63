package server

import (
	"menagerie/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AddFavorite handles POST /api/animals/:slug/favorite. Favoriting the
// same animal twice is a no-op; the response always carries the current
// count and the viewer's own favorited flag.
func (s *Server) AddFavorite(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	animal, err := s.animalRepo.GetBySlug(ctx, c.Params("slug"))
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if err := s.favoriteRepo.Add(ctx, userID, animal.Slug); err != nil {
		return models.RespondWithError(c, err)
	}

	resp, err := s.projectAnimal(ctx, animal, userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(models.AnimalEnvelope{Animal: resp})
}

// RemoveFavorite handles DELETE /api/animals/:slug/favorite. Removing a
// favorite that was never set is a no-op, not an error.
func (s *Server) RemoveFavorite(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	animal, err := s.animalRepo.GetBySlug(ctx, c.Params("slug"))
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if err := s.favoriteRepo.Remove(ctx, userID, animal.Slug); err != nil {
		return models.RespondWithError(c, err)
	}

	resp, err := s.projectAnimal(ctx, animal, userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(models.AnimalEnvelope{Animal: resp})
}
