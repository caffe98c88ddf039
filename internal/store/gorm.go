package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/campus-connect/campus-events-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type gormStore struct {
	db *gorm.DB
}

// New wraps a gorm database in the Store boundary.
func New(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrConflict
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *gormStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

func (s *gormStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &user, nil
}

func (s *gormStore) CreateEvent(ctx context.Context, event *models.Event) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	if err := s.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (s *gormStore) UpdateEvent(ctx context.Context, event *models.Event) error {
	res := s.db.WithContext(ctx).Model(&models.Event{}).Where("id = ?", event.ID).Updates(map[string]interface{}{
		"title":             event.Title,
		"date":              event.Date,
		"time":              event.Time,
		"venue":             event.Venue,
		"description":       event.Description,
		"max_registrations": event.MaxRegistrations,
	})
	if res.Error != nil {
		return fmt.Errorf("update event: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore) DeleteEvent(ctx context.Context, id string) error {
	// Registrations have no life of their own; deleting an event takes them
	// with it, in one transaction.
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&models.Registration{}).Error; err != nil {
			return fmt.Errorf("delete registrations: %w", err)
		}
		res := tx.Where("id = ?", id).Delete(&models.Event{})
		if res.Error != nil {
			return fmt.Errorf("delete event: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (s *gormStore) GetEventByID(ctx context.Context, id string) (*models.Event, error) {
	var event models.Event
	if err := s.db.WithContext(ctx).First(&event, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return &event, nil
}

func (s *gormStore) ListEvents(ctx context.Context, q EventQuery) ([]models.Event, error) {
	tx := s.db.WithContext(ctx).Model(&models.Event{})
	if q.Before != "" {
		tx = tx.Where("date < ?", q.Before)
	}
	if q.Descending {
		tx = tx.Order("date DESC")
	} else {
		tx = tx.Order("date ASC")
	}

	var events []models.Event
	if err := tx.Find(&events).Error; err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (s *gormStore) CreateRegistration(ctx context.Context, reg *models.Registration) error {
	if reg.ID == "" {
		reg.ID = uuid.New().String()
	}
	if reg.CreatedAt.IsZero() {
		reg.CreatedAt = time.Now().UTC()
	}
	// Roll numbers are case-insensitive identities: "a12" and "A12 " are the
	// same registrant.
	reg.RollNo = strings.ToUpper(strings.TrimSpace(reg.RollNo))

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.First(&event, "id = ?", reg.EventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("load event: %w", err)
		}

		if event.MaxRegistrations != nil {
			var count int64
			if err := tx.Model(&models.Registration{}).Where("event_id = ?", reg.EventID).Count(&count).Error; err != nil {
				return fmt.Errorf("count registrations: %w", err)
			}
			if count >= int64(*event.MaxRegistrations) {
				return ErrEventFull
			}
		}

		if err := tx.Create(reg).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrConflict
			}
			return fmt.Errorf("insert registration: %w", err)
		}
		return nil
	})
	return err
}

func (s *gormStore) ListRegistrations(ctx context.Context, eventID string) ([]models.Registration, error) {
	var regs []models.Registration
	err := s.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&regs).Error
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return regs, nil
}

func (s *gormStore) CountRegistrations(ctx context.Context, eventID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Registration{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count registrations: %w", err)
	}
	return count, nil
}

func (s *gormStore) CountRegistrationsByEvent(ctx context.Context, eventIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(eventIDs))
	if len(eventIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		EventID string
		Total   int64
	}
	err := s.db.WithContext(ctx).
		Model(&models.Registration{}).
		Select("event_id, COUNT(*) as total").
		Where("event_id IN ?", eventIDs).
		Group("event_id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count registrations by event: %w", err)
	}

	for _, r := range rows {
		counts[r.EventID] = r.Total
	}
	return counts, nil
}
