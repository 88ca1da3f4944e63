package server

import (
	"menagerie/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetProfile handles GET /api/profiles/:username. The following flag is
// relative to the viewer; anonymous viewers always see false.
func (s *Server) GetProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()
	viewerID, _ := s.optionalUserID(c)

	target, err := s.userRepo.GetByUsername(ctx, c.Params("username"))
	if err != nil {
		return models.RespondWithError(c, err)
	}

	following, err := s.followRepo.IsFollowing(ctx, viewerID, target.ID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(models.ProfileEnvelope{Profile: models.NewProfile(*target, following)})
}

// FollowUser handles POST /api/profiles/:username/follow
func (s *Server) FollowUser(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	target, err := s.userRepo.GetByUsername(ctx, c.Params("username"))
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if target.ID == userID {
		return models.RespondWithError(c, models.NewValidationError("you cannot follow yourself"))
	}

	if err := s.followRepo.Follow(ctx, userID, target.ID); err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(models.ProfileEnvelope{Profile: models.NewProfile(*target, true)})
}

// UnfollowUser handles DELETE /api/profiles/:username/follow
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	target, err := s.userRepo.GetByUsername(ctx, c.Params("username"))
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if err := s.followRepo.Unfollow(ctx, userID, target.ID); err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(models.ProfileEnvelope{Profile: models.NewProfile(*target, false)})
}
