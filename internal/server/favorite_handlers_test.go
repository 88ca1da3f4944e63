package server

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoriteRoundTrip(t *testing.T) {
	app, _ := newTestApp(t)
	author := registerUser(t, app, "zookeeper")
	fan := registerUser(t, app, "fan")
	slug := createAnimal(t, app, author.Token, "Dapper Penguin")

	favorite := func(token string) animalBody {
		resp := doJSON(t, app, "POST", "/api/animals/"+slug+"/favorite", token, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		var body animalBody
		decodeBody(t, resp, &body)
		return body
	}

	t.Run("favorite sets viewer flag and count", func(t *testing.T) {
		body := favorite(fan.Token)
		assert.True(t, body.Animal.Favorited)
		assert.Equal(t, int64(1), body.Animal.FavoritedCount)
	})

	t.Run("favoriting twice is idempotent", func(t *testing.T) {
		body := favorite(fan.Token)
		assert.True(t, body.Animal.Favorited)
		assert.Equal(t, int64(1), body.Animal.FavoritedCount)
	})

	t.Run("favorited is per viewer, count is global", func(t *testing.T) {
		resp := doJSON(t, app, "GET", "/api/animals/"+slug, author.Token, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body animalBody
		decodeBody(t, resp, &body)
		assert.False(t, body.Animal.Favorited, "another viewer must not inherit the fan's flag")
		assert.Equal(t, int64(1), body.Animal.FavoritedCount)
	})

	t.Run("anonymous viewer sees favorited false", func(t *testing.T) {
		resp := doJSON(t, app, "GET", "/api/animals/"+slug, "", nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body animalBody
		decodeBody(t, resp, &body)
		assert.False(t, body.Animal.Favorited)
		assert.Equal(t, int64(1), body.Animal.FavoritedCount)
	})

	t.Run("unfavorite restores prior count", func(t *testing.T) {
		resp := doJSON(t, app, "DELETE", "/api/animals/"+slug+"/favorite", fan.Token, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body animalBody
		decodeBody(t, resp, &body)
		assert.False(t, body.Animal.Favorited)
		assert.Equal(t, int64(0), body.Animal.FavoritedCount)
	})

	t.Run("unfavoriting when not favorited is a no-op", func(t *testing.T) {
		resp := doJSON(t, app, "DELETE", "/api/animals/"+slug+"/favorite", fan.Token, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body animalBody
		decodeBody(t, resp, &body)
		assert.Equal(t, int64(0), body.Animal.FavoritedCount)
	})

	t.Run("unknown animal is a 404", func(t *testing.T) {
		resp := doJSON(t, app, "POST", "/api/animals/ghost/favorite", fan.Token, nil)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}
