package server

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type commentBody struct {
	Comment struct {
		ID     uint   `json:"id"`
		Body   string `json:"body"`
		Author struct {
			Username string `json:"username"`
		} `json:"author"`
	} `json:"comment"`
}

type commentsBody struct {
	Comments []struct {
		ID     uint   `json:"id"`
		Body   string `json:"body"`
		Author struct {
			Username string `json:"username"`
		} `json:"author"`
	} `json:"comments"`
}

func postComment(t *testing.T, app *fiber.App, token, slug, text string) uint {
	t.Helper()
	resp := doJSON(t, app, "POST", "/api/animals/"+slug+"/comments", token, map[string]any{
		"comment": map[string]string{"body": text},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body commentBody
	decodeBody(t, resp, &body)
	require.NotZero(t, body.Comment.ID)
	return body.Comment.ID
}

func TestComments(t *testing.T) {
	app, _ := newTestApp(t)
	author := registerUser(t, app, "caretaker")
	commenter := registerUser(t, app, "chatty")
	slug := createAnimal(t, app, author.Token, "Patient Capybara")

	t.Run("comment on missing animal is a 404", func(t *testing.T) {
		resp := doJSON(t, app, "POST", "/api/animals/ghost/comments", commenter.Token, map[string]any{
			"comment": map[string]string{"body": "hello?"},
		})
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("empty body rejected", func(t *testing.T) {
		resp := doJSON(t, app, "POST", "/api/animals/"+slug+"/comments", commenter.Token, map[string]any{
			"comment": map[string]string{"body": ""},
		})
		assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("created comment carries reduced author", func(t *testing.T) {
		resp := doJSON(t, app, "POST", "/api/animals/"+slug+"/comments", commenter.Token, map[string]any{
			"comment": map[string]string{"body": "what a calm creature"},
		})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)

		var body commentBody
		decodeBody(t, resp, &body)
		assert.Equal(t, "what a calm creature", body.Comment.Body)
		assert.Equal(t, "chatty", body.Comment.Author.Username)
	})

	t.Run("listing returns creation order", func(t *testing.T) {
		postComment(t, app, author.Token, slug, "thanks for visiting")

		resp := doJSON(t, app, "GET", "/api/animals/"+slug+"/comments", "", nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body commentsBody
		decodeBody(t, resp, &body)
		require.Len(t, body.Comments, 2)
		assert.Equal(t, "what a calm creature", body.Comments[0].Body)
		assert.Equal(t, "thanks for visiting", body.Comments[1].Body)
	})

	t.Run("listing for missing animal is a 404", func(t *testing.T) {
		resp := doJSON(t, app, "GET", "/api/animals/ghost/comments", "", nil)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestDeleteComment(t *testing.T) {
	app, _ := newTestApp(t)
	author := registerUser(t, app, "host")
	commenter := registerUser(t, app, "guest")
	stranger := registerUser(t, app, "stranger")
	slug := createAnimal(t, app, author.Token, "Bold Badger")
	otherSlug := createAnimal(t, app, author.Token, "Shy Shrew")

	del := func(token string, id uint) int {
		resp := doJSON(t, app, "DELETE", fmt.Sprintf("/api/animals/%s/comments/%d", slug, id), token, nil)
		return resp.StatusCode
	}

	t.Run("stranger cannot delete", func(t *testing.T) {
		id := postComment(t, app, commenter.Token, slug, "nice badger")
		assert.Equal(t, fiber.StatusForbidden, del(stranger.Token, id))
	})

	t.Run("comment author can delete", func(t *testing.T) {
		id := postComment(t, app, commenter.Token, slug, "delete me")
		assert.Equal(t, fiber.StatusOK, del(commenter.Token, id))
	})

	t.Run("animal author can moderate", func(t *testing.T) {
		id := postComment(t, app, commenter.Token, slug, "rude remark")
		assert.Equal(t, fiber.StatusOK, del(author.Token, id))
	})

	t.Run("comment under a different animal is not found", func(t *testing.T) {
		id := postComment(t, app, commenter.Token, otherSlug, "wrong place")
		assert.Equal(t, fiber.StatusNotFound, del(commenter.Token, id))
	})

	t.Run("unknown comment id is not found", func(t *testing.T) {
		assert.Equal(t, fiber.StatusNotFound, del(author.Token, 99999))
	})
}
