package models

import "time"

// The projection types below define the public JSON contract. They are
// built from store results and deliberately exclude password, email and
// the raw link rows. Email is stripped from every author shape, single
// and list alike.

// Author is the reduced user shape embedded in animals and comments.
type Author struct {
	Username string `json:"username"`
	Bio      string `json:"bio"`
	Image    string `json:"image"`
}

// Profile is the public user shape with the viewer-relative follow flag.
type Profile struct {
	Username  string `json:"username"`
	Bio       string `json:"bio"`
	Image     string `json:"image"`
	Following bool   `json:"following"`
}

// AnimalResponse is the projected animal used for both the single-item
// and list shapes.
type AnimalResponse struct {
	Slug           string    `json:"slug"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	Image          string    `json:"image,omitempty"`
	TagList        []string  `json:"tagList"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Favorited      bool      `json:"favorited"`
	FavoritedCount int64     `json:"favoritedCount"`
	Author         Author    `json:"author"`
}

// CommentResponse is the projected comment with its author reduced.
type CommentResponse struct {
	ID        uint      `json:"id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Author    Author    `json:"author"`
}

type AnimalEnvelope struct {
	Animal AnimalResponse `json:"animal"`
}

type AnimalsEnvelope struct {
	Animals []AnimalResponse `json:"animals"`
}

type CommentEnvelope struct {
	Comment CommentResponse `json:"comment"`
}

type CommentsEnvelope struct {
	Comments []CommentResponse `json:"comments"`
}

type ProfileEnvelope struct {
	Profile Profile `json:"profile"`
}

type TagsEnvelope struct {
	Tags []string `json:"tags"`
}

// NewAuthor projects a user into the embedded author shape.
func NewAuthor(u User) Author {
	return Author{Username: u.Username, Bio: u.Bio, Image: u.Image}
}

// NewProfile projects a user into the public profile shape.
func NewProfile(u User, following bool) Profile {
	return Profile{Username: u.Username, Bio: u.Bio, Image: u.Image, Following: following}
}

// NewAnimalResponse projects an animal together with its computed
// relationship values. tagList is never nil so it serializes as [].
func NewAnimalResponse(a Animal, tags []string, favorited bool, favoritedCount int64) AnimalResponse {
	if tags == nil {
		tags = []string{}
	}
	return AnimalResponse{
		Slug:           a.Slug,
		Title:          a.Title,
		Body:           a.Body,
		Image:          a.Image,
		TagList:        tags,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
		Favorited:      favorited,
		FavoritedCount: favoritedCount,
		Author:         NewAuthor(a.Author),
	}
}

// NewCommentResponse projects a comment with its author reduced.
func NewCommentResponse(cm Comment) CommentResponse {
	return CommentResponse{
		ID:        cm.ID,
		Body:      cm.Body,
		CreatedAt: cm.CreatedAt,
		UpdatedAt: cm.UpdatedAt,
		Author:    NewAuthor(cm.Author),
	}
}
