package server

import (
	"menagerie/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// GetCurrentUser handles GET /api/user
func (s *Server) GetCurrentUser(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{"user": user})
}

// UpdateCurrentUser handles PUT /api/user. Only supplied fields change;
// a supplied password is re-hashed.
func (s *Server) UpdateCurrentUser(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var req userRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("invalid request body"))
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if req.User.Username != "" {
		user.Username = req.User.Username
	}
	if req.User.Email != "" {
		user.Email = req.User.Email
	}
	if req.User.Bio != "" {
		user.Bio = req.User.Bio
	}
	if req.User.Image != "" {
		user.Image = req.User.Image
	}
	if req.User.Password != "" {
		hashed, herr := bcrypt.GenerateFromPassword([]byte(req.User.Password), bcrypt.DefaultCost)
		if herr != nil {
			return models.RespondWithError(c, models.NewInternalError(herr))
		}
		user.Password = string(hashed)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{"user": user})
}

// DeleteCurrentUser handles DELETE /api/user. Deleting the account
// cascades to owned animals, their comments and link rows, the user's
// comments elsewhere, and all follow edges.
func (s *Server) DeleteCurrentUser(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return models.RespondWithError(c, err)
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return models.RespondWithError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
