package server

import (
	"time"

	"menagerie/internal/cache"
	"menagerie/internal/models"

	"github.com/gofiber/fiber/v2"
)

const (
	tagsCacheKey = "tags:all"
	tagsCacheTTL = time.Minute
)

// GetTags handles GET /api/tags, cache-aside with a short TTL since the
// global tag set changes rarely and only grows.
func (s *Server) GetTags(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var names []string
	err := cache.Aside(ctx, s.redis, tagsCacheKey, &names, tagsCacheTTL, func() error {
		var ferr error
		names, ferr = s.tagRepo.ListNames(ctx)
		return ferr
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if names == nil {
		names = []string{}
	}
	return c.JSON(models.TagsEnvelope{Tags: names})
}
