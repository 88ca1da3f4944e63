// Package seed fills the database with demo users, animals, tags,
// comments, follows and favorites.
package seed

import (
	"fmt"
	"log"
	"math/rand"

	"menagerie/internal/models"
	"menagerie/internal/slug"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var tagPool = []string{
	"dragons", "training", "reptiles", "mammals", "birds",
	"nocturnal", "aquatic", "rescue", "exotic", "grooming",
}

// Run populates the store with userCount users and roughly
// animalsPerUser animals each. Idempotent enough for repeated local
// runs: duplicate usernames and slugs are skipped.
func Run(db *gorm.DB, userCount, animalsPerUser int) error {
	gofakeit.Seed(42)
	rnd := rand.New(rand.NewSource(42))

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	users := make([]models.User, 0, userCount)
	for i := 0; i < userCount; i++ {
		user := models.User{
			Username: fmt.Sprintf("%s%d", gofakeit.Username(), i),
			Email:    fmt.Sprintf("seed%d_%s", i, gofakeit.Email()),
			Password: string(hashed),
			Bio:      gofakeit.Sentence(8),
			Image:    gofakeit.ImageURL(200, 200),
		}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&user).Error; err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		users = append(users, user)
	}

	var animals []models.Animal
	for _, u := range users {
		for i := 0; i < animalsPerUser; i++ {
			title := fmt.Sprintf("%s the %s %s", gofakeit.PetName(), gofakeit.AdjectiveDescriptive(), gofakeit.Animal())
			a := models.Animal{
				Slug:     slug.Make(title),
				Title:    title,
				Body:     gofakeit.Paragraph(1, 3, 12, " "),
				Image:    gofakeit.ImageURL(640, 480),
				AuthorID: u.ID,
			}
			if a.Slug == "" {
				continue
			}
			if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&a).Error; err != nil {
				return fmt.Errorf("seed animal: %w", err)
			}
			animals = append(animals, a)

			for _, name := range pickTags(rnd) {
				tag := models.Tag{Name: name}
				if err := db.FirstOrCreate(&tag, models.Tag{Name: name}).Error; err != nil {
					return fmt.Errorf("seed tag: %w", err)
				}
				link := models.AnimalTag{AnimalSlug: a.Slug, TagName: name}
				if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
					return fmt.Errorf("seed tag link: %w", err)
				}
			}
		}
	}

	for _, a := range animals {
		for _, u := range users {
			if u.ID == a.AuthorID {
				continue
			}
			if rnd.Intn(3) == 0 {
				fav := models.Favorite{UserID: u.ID, AnimalSlug: a.Slug}
				if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&fav).Error; err != nil {
					return fmt.Errorf("seed favorite: %w", err)
				}
			}
			if rnd.Intn(2) == 0 {
				cm := models.Comment{
					Body:       gofakeit.Sentence(10),
					AnimalSlug: a.Slug,
					AuthorID:   u.ID,
				}
				if err := db.Create(&cm).Error; err != nil {
					return fmt.Errorf("seed comment: %w", err)
				}
			}
		}
	}

	for _, follower := range users {
		for _, followee := range users {
			if follower.ID == followee.ID || rnd.Intn(3) != 0 {
				continue
			}
			edge := models.Follow{FollowerID: follower.ID, FolloweeID: followee.ID}
			if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&edge).Error; err != nil {
				return fmt.Errorf("seed follow: %w", err)
			}
		}
	}

	log.Printf("Seeded %d users and %d animals", len(users), len(animals))
	return nil
}

func pickTags(rnd *rand.Rand) []string {
	n := 1 + rnd.Intn(3)
	picked := make([]string, 0, n)
	seen := make(map[string]bool, n)
	for len(picked) < n {
		name := tagPool[rnd.Intn(len(tagPool))]
		if !seen[name] {
			seen[name] = true
			picked = append(picked, name)
		}
	}
	return picked
}
