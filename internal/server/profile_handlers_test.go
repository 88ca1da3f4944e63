package server

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type profileBody struct {
	Profile struct {
		Username  string `json:"username"`
		Bio       string `json:"bio"`
		Image     string `json:"image"`
		Following bool   `json:"following"`
	} `json:"profile"`
}

func TestProfiles(t *testing.T) {
	app, _ := newTestApp(t)
	viewer := registerUser(t, app, "viewer")
	registerUser(t, app, "celebrity")

	getProfile := func(token string) profileBody {
		resp := doJSON(t, app, "GET", "/api/profiles/celebrity", token, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		var body profileBody
		decodeBody(t, resp, &body)
		return body
	}

	t.Run("anonymous profile read", func(t *testing.T) {
		body := getProfile("")
		assert.Equal(t, "celebrity", body.Profile.Username)
		assert.False(t, body.Profile.Following)
	})

	t.Run("unknown profile is a 404", func(t *testing.T) {
		resp := doJSON(t, app, "GET", "/api/profiles/nobody", "", nil)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("follow flips the viewer-relative flag", func(t *testing.T) {
		resp := doJSON(t, app, "POST", "/api/profiles/celebrity/follow", viewer.Token, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body profileBody
		decodeBody(t, resp, &body)
		assert.True(t, body.Profile.Following)

		assert.True(t, getProfile(viewer.Token).Profile.Following)
		assert.False(t, getProfile("").Profile.Following)
	})

	t.Run("double follow is idempotent", func(t *testing.T) {
		resp := doJSON(t, app, "POST", "/api/profiles/celebrity/follow", viewer.Token, nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("unfollow clears the flag", func(t *testing.T) {
		resp := doJSON(t, app, "DELETE", "/api/profiles/celebrity/follow", viewer.Token, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		assert.False(t, getProfile(viewer.Token).Profile.Following)
	})

	t.Run("unfollow when not following is a no-op", func(t *testing.T) {
		resp := doJSON(t, app, "DELETE", "/api/profiles/celebrity/follow", viewer.Token, nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("self-follow rejected", func(t *testing.T) {
		resp := doJSON(t, app, "POST", "/api/profiles/viewer/follow", viewer.Token, nil)
		assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("following a missing user is a 404", func(t *testing.T) {
		resp := doJSON(t, app, "POST", "/api/profiles/nobody/follow", viewer.Token, nil)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}
