package server

import (
	"menagerie/internal/models"

	"github.com/gofiber/fiber/v2"
)

type commentRequest struct {
	Comment struct {
		Body string `json:"body"`
	} `json:"comment"`
}

// ListComments handles GET /api/animals/:slug/comments (public).
// Comments come back oldest first with reduced authors.
func (s *Server) ListComments(c *fiber.Ctx) error {
	ctx := c.UserContext()

	animal, err := s.animalRepo.GetBySlug(ctx, c.Params("slug"))
	if err != nil {
		return models.RespondWithError(c, err)
	}

	comments, err := s.commentRepo.ListByAnimal(ctx, animal.Slug)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	resp := make([]models.CommentResponse, len(comments))
	for i, cm := range comments {
		resp[i] = models.NewCommentResponse(cm)
	}

	return c.JSON(models.CommentsEnvelope{Comments: resp})
}

// CreateComment handles POST /api/animals/:slug/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	animal, err := s.animalRepo.GetBySlug(ctx, c.Params("slug"))
	if err != nil {
		return models.RespondWithError(c, err)
	}

	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("invalid request body"))
	}
	if req.Comment.Body == "" {
		return models.RespondWithError(c, models.NewValidationError("comment body is required"))
	}

	comment := &models.Comment{
		Body:       req.Comment.Body,
		AnimalSlug: animal.Slug,
		AuthorID:   userID,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return models.RespondWithError(c, err)
	}

	created, err := s.commentRepo.GetByID(ctx, comment.ID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.CommentEnvelope{
		Comment: models.NewCommentResponse(*created),
	})
}

// DeleteComment handles DELETE /api/animals/:slug/comments/:id.
// Allowed for the comment's author and for the animal's author.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	commentID, err := c.ParamsInt("id")
	if err != nil {
		return models.RespondWithError(c, models.NewValidationError("invalid comment ID"))
	}

	animal, err := s.animalRepo.GetBySlug(ctx, c.Params("slug"))
	if err != nil {
		return models.RespondWithError(c, err)
	}

	comment, err := s.commentRepo.GetByID(ctx, uint(commentID))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if comment.AnimalSlug != animal.Slug {
		return models.RespondWithError(c, models.NewNotFoundError("Comment", commentID))
	}

	if comment.AuthorID != userID && animal.AuthorID != userID {
		return models.RespondWithError(c,
			models.NewForbiddenError("only the comment author or the animal author can delete a comment"))
	}

	if err := s.commentRepo.Delete(ctx, comment.ID); err != nil {
		return models.RespondWithError(c, err)
	}

	return c.SendStatus(fiber.StatusOK)
}
