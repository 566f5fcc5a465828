package services

import (
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/terraincognita07/facets/internal/db"
	"github.com/terraincognita07/facets/internal/models"
)

type ThoughtService struct {
	gateway *db.Gateway
	now     clock
}

func NewThoughtService(gateway *db.Gateway, now func() time.Time) *ThoughtService {
	return &ThoughtService{gateway: gateway, now: now}
}

func (service *ThoughtService) CreateThought(profileID uint, identityID uint, content string) (models.Thought, error) {
	content, err := requireText("Thought content", content)
	if err != nil {
		return models.Thought{}, err
	}

	identity, err := db.FindOne[models.Identity](service.gateway, db.By("id", identityID))
	if err != nil {
		return models.Thought{}, lookupFailure("Identity", err)
	}
	if identity.ProfileID != profileID {
		return models.Thought{}, forbidden("Identity")
	}

	thought := models.Thought{
		ProfileID:  profileID,
		IdentityID: identity.ID,
		Content:    content,
		CreatedAt:  service.now.timestamp(),
	}
	if err := service.gateway.Create(&thought); err != nil {
		return models.Thought{}, storeFailure("creating thought", err)
	}
	return thought, nil
}

// GetOrderedThoughts returns the identity's thoughts oldest first. With both year and month set
// the window is that calendar month, otherwise it is the current day.
func (service *ThoughtService) GetOrderedThoughts(profileID uint, identityID uint, year int, month int) ([]models.Thought, error) {
	now := service.now()
	from, to := dayBounds(now)
	if year != 0 && month != 0 {
		if month < 1 || month > 12 {
			return nil, invalid("Month must be between 1 and 12")
		}
		from, to = monthBounds(year, time.Month(month), now.Location())
	}

	thoughts, err := db.FindMany[models.Thought](service.gateway, db.Query{
		Filters: squirrel.Eq{"profile_id": profileID, "identity_id": identityID},
		Where: []squirrel.Sqlizer{
			squirrel.GtOrEq{"created_at": from},
			squirrel.Lt{"created_at": to},
		},
		Order: "created_at ASC, id ASC",
	})
	if err != nil {
		return nil, storeFailure("loading thoughts", err)
	}
	return thoughts, nil
}

func (service *ThoughtService) EditThought(profileID uint, thoughtID uint, content string) (models.Thought, error) {
	content, err := requireText("Thought content", content)
	if err != nil {
		return models.Thought{}, err
	}

	thought, err := service.loadOwnedThought(profileID, thoughtID)
	if err != nil {
		return models.Thought{}, err
	}
	if thought.Content == content {
		return thought, nil
	}

	thought.Content = content
	if err := service.gateway.Update(&thought, "content"); err != nil {
		return models.Thought{}, storeFailure("updating thought", err)
	}
	return thought, nil
}

func (service *ThoughtService) DeleteThought(profileID uint, thoughtID uint) error {
	thought, err := service.loadOwnedThought(profileID, thoughtID)
	if err != nil {
		return err
	}
	return storeFailure("deleting thought", service.gateway.Delete(&models.Thought{ID: thought.ID}))
}

func (service *ThoughtService) loadOwnedThought(profileID uint, thoughtID uint) (models.Thought, error) {
	thought, err := db.FindOne[models.Thought](service.gateway, db.By("id", thoughtID))
	if err != nil {
		return models.Thought{}, lookupFailure("Thought", err)
	}
	if thought.ProfileID != profileID {
		return models.Thought{}, forbidden("Thought")
	}
	return thought, nil
}
