package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/Wildboar1/IERP-Website-sub000/src/portal/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrConflict means an application already exists for the Discord id.
	ErrConflict = errors.New("store: duplicate application")
	ErrNotFound = errors.New("store: application not found")
	// ErrUnavailable wraps storage faults on durable-write paths; callers
	// report these as retryable.
	ErrUnavailable = errors.New("store: storage unavailable")
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Create persists a new pending application. Uniqueness is enforced by the
// dedupe-key index, not a read-then-write check, so concurrent submissions for
// the same Discord id cannot both land. Admin submitters get a synthetic key,
// an explicit escape hatch so operators can create test records.
func (s *Store) Create(app *types.Application, adminSubmitter bool) error {
	app.ID = uuid.NewString()
	app.Status = types.StatusPending
	app.SubmittedAt = time.Now().UTC()
	app.DedupeKey = app.DiscordID
	if adminSubmitter {
		app.DedupeKey = app.DiscordID + "#" + app.ID
	}
	if err := s.db.Create(app).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrConflict
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (s *Store) Get(id string) (*types.Application, error) {
	var app types.Application
	if err := s.db.First(&app, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return &app, nil
}

// List returns all applications, newest submission first.
func (s *Store) List() ([]types.Application, error) {
	var apps []types.Application
	if err := s.db.Order("submitted_at desc").Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return apps, nil
}

// SetStatus records a review decision, stamping the reviewer and time. Setting
// the status back to pending clears the review stamps instead; that is the
// administrative reset path, not a normal transition.
func (s *Store) SetStatus(id, status, reviewerID, notes string) (*types.Application, error) {
	updates := map[string]any{
		"status":       status,
		"reviewed_at":  time.Now().UTC(),
		"reviewed_by":  reviewerID,
		"review_notes": notes,
	}
	if status == types.StatusPending {
		updates["reviewed_at"] = nil
		updates["reviewed_by"] = ""
		updates["review_notes"] = ""
	}
	res := s.db.Model(&types.Application{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.Get(id)
}

// Reset clears every matching application back to pending and returns how many
// records changed.
func (s *Store) Reset(ids []string) (int64, error) {
	res := s.db.Model(&types.Application{}).Where("id IN ?", ids).Updates(map[string]any{
		"status":       types.StatusPending,
		"reviewed_at":  nil,
		"reviewed_by":  "",
		"review_notes": "",
	})
	if res.Error != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, res.Error)
	}
	return res.RowsAffected, nil
}

// IsAdmin reports whether the Discord id belongs to an admin staff member.
func (s *Store) IsAdmin(discordID string) (bool, error) {
	var staff types.StaffMember
	err := s.db.First(&staff, "discord_id = ?", discordID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return staff.IsAdmin, nil
}
