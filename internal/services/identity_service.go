package services

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Masterminds/squirrel"
	"github.com/terraincognita07/facets/internal/db"
	"github.com/terraincognita07/facets/internal/models"
)

// IdentityService keeps exactly one identity active per profile.
type IdentityService struct {
	gateway *db.Gateway
	now     clock
}

type IdentitySwap struct {
	Previous models.Identity
	Current  models.Identity
}

func NewIdentityService(gateway *db.Gateway, now func() time.Time) *IdentityService {
	return &IdentityService{gateway: gateway, now: now}
}

// InitializeIdentitiesFor builds one unsaved identity per template with the first one active.
// The caller persists the result inside its own transaction.
func (service *IdentityService) InitializeIdentitiesFor(profileID uint) ([]models.Identity, error) {
	return service.initializeIdentities(service.gateway, profileID)
}

func (service *IdentityService) initializeIdentities(store *db.Gateway, profileID uint) ([]models.Identity, error) {
	templates, err := db.FindMany[models.IdentityTemplate](store, db.Query{})
	if err != nil {
		return nil, storeFailure("loading identity templates", err)
	}
	if len(templates) == 0 {
		return nil, notFound("Identity templates")
	}

	createdAt := service.now.timestamp()
	identities := make([]models.Identity, 0, len(templates))
	for index, template := range templates {
		identities = append(identities, models.Identity{
			ProfileID:  profileID,
			TemplateID: template.ID,
			Template:   template,
			IsActive:   index == 0,
			CustomName: template.Name,
			CreatedAt:  createdAt,
		})
	}
	return identities, nil
}

func (service *IdentityService) ListIdentities(profileID uint) ([]models.Identity, error) {
	identities, err := db.FindMany[models.Identity](service.gateway, db.By("profile_id", profileID).With("Template"))
	if err != nil {
		return nil, storeFailure("loading identities", err)
	}
	return identities, nil
}

// GetActiveIdentity scans the profile's loaded identities without touching the store.
func (service *IdentityService) GetActiveIdentity(profile *models.Profile) (models.Identity, error) {
	if profile == nil {
		return models.Identity{}, notFound("Profile")
	}
	for _, identity := range profile.Identities {
		if identity.IsActive {
			return identity, nil
		}
	}
	return models.Identity{}, notFound("Active identity")
}

func (service *IdentityService) GetActiveIdentityFor(profileID uint) (models.Identity, error) {
	identities, err := service.ListIdentities(profileID)
	if err != nil {
		return models.Identity{}, err
	}
	return service.GetActiveIdentity(&models.Profile{ID: profileID, Identities: identities})
}

// SetDefaultIdentity activates the first identity when none is active. It writes nothing otherwise.
func (service *IdentityService) SetDefaultIdentity(profileID uint) (models.Identity, error) {
	identities, err := service.ListIdentities(profileID)
	if err != nil {
		return models.Identity{}, err
	}
	if len(identities) == 0 {
		return models.Identity{}, notFound("Identities")
	}
	for _, identity := range identities {
		if identity.IsActive {
			return identity, nil
		}
	}

	first := identities[0]
	first.IsActive = true
	if err := service.gateway.Update(&first, "is_active"); err != nil {
		return models.Identity{}, storeFailure("activating default identity", err)
	}
	return first, nil
}

func (service *IdentityService) DeactivateAll(profileID uint) error {
	err := service.gateway.Transaction(func(tx *db.Gateway) error {
		return deactivateIdentities(tx, profileID)
	})
	return storeFailure("deactivating identities", err)
}

// SetIdentity makes identityID the only active identity of the profile.
func (service *IdentityService) SetIdentity(profileID uint, identityID uint) (models.Identity, error) {
	target, err := service.loadOwnedIdentity(profileID, identityID)
	if err != nil {
		return models.Identity{}, err
	}

	err = service.gateway.Transaction(func(tx *db.Gateway) error {
		if err := deactivateIdentities(tx, profileID); err != nil {
			return err
		}
		target.IsActive = true
		return tx.Update(&target, "is_active")
	})
	if err != nil {
		return models.Identity{}, storeFailure("setting active identity", err)
	}
	return target, nil
}

// SwapActiveIdentities moves the active flag from currentID to newID in one transaction.
// A zero currentID resolves to whichever identity is active now.
func (service *IdentityService) SwapActiveIdentities(profileID uint, currentID uint, newID uint) (IdentitySwap, error) {
	var current models.Identity
	var err error
	if currentID == 0 {
		current, err = service.GetActiveIdentityFor(profileID)
	} else {
		current, err = service.loadOwnedIdentity(profileID, currentID)
	}
	if err != nil {
		return IdentitySwap{}, err
	}

	next, err := service.loadOwnedIdentity(profileID, newID)
	if err != nil {
		return IdentitySwap{}, err
	}
	if current.ID == next.ID {
		return IdentitySwap{Previous: current, Current: current}, nil
	}

	err = service.gateway.Transaction(func(tx *db.Gateway) error {
		if err := deactivateIdentities(tx, profileID); err != nil {
			return err
		}
		next.IsActive = true
		return tx.Update(&next, "is_active")
	})
	if err != nil {
		return IdentitySwap{}, storeFailure("swapping active identities", err)
	}

	current.IsActive = false
	return IdentitySwap{Previous: current, Current: next}, nil
}

// UpdateCustomNames renames the profile's identities in one commit and returns the ids that changed.
// Entries for identities the profile does not own are skipped. A blank name resets to the template name.
func (service *IdentityService) UpdateCustomNames(profileID uint, names map[uint]string) ([]uint, error) {
	identities, err := service.ListIdentities(profileID)
	if err != nil {
		return nil, err
	}

	staged := make([]models.Identity, 0, len(names))
	for _, identity := range identities {
		raw, requested := names[identity.ID]
		if !requested {
			continue
		}

		name := strings.TrimSpace(raw)
		if name == "" {
			name = identity.Template.Name
		}
		if utf8.RuneCountInString(name) > models.MaxCustomNameLength {
			return nil, invalid("Identity name must be at most %d characters", models.MaxCustomNameLength)
		}
		if name == identity.DisplayName() {
			continue
		}

		identity.CustomName = name
		staged = append(staged, identity)
	}

	updated := make([]uint, 0, len(staged))
	if len(staged) == 0 {
		return updated, nil
	}

	err = service.gateway.Transaction(func(tx *db.Gateway) error {
		for index := range staged {
			if err := tx.Update(&staged[index], "custom_name"); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, storeFailure("updating identity names", err)
	}

	for _, identity := range staged {
		updated = append(updated, identity.ID)
	}
	sort.Slice(updated, func(i, j int) bool { return updated[i] < updated[j] })
	return updated, nil
}

func (service *IdentityService) loadOwnedIdentity(profileID uint, identityID uint) (models.Identity, error) {
	identity, err := db.FindOne[models.Identity](service.gateway, db.By("id", identityID).With("Template"))
	if err != nil {
		return models.Identity{}, lookupFailure("Identity", err)
	}
	if identity.ProfileID != profileID {
		return models.Identity{}, forbidden("Identity")
	}
	return identity, nil
}

func deactivateIdentities(store *db.Gateway, profileID uint) error {
	_, err := db.UpdateWhere[models.Identity](store, db.Query{
		Filters: squirrel.Eq{"profile_id": profileID, "is_active": true},
	}, map[string]any{"is_active": false})
	return err
}
