package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/timegrid/internal/models"
)

type userData struct {
	SlotsPerDay *int                          `json:"slots_per_day,omitempty"`
	DisplayMode *string                       `json:"display_mode,omitempty"`
	Subjects    []models.Subject              `json:"subjects"`
	Timetables  map[string]models.DailyRecord `json:"timetables"`
}

type jsonDocument struct {
	Version int                  `json:"version"`
	Users   map[string]*userData `json:"users"`
}

// JSONStore is a plain-file Provider, useful for debugging and tests.
type JSONStore struct {
	path  string
	store *jsonDocument
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &jsonDocument{
		Version: 1,
		Users:   make(map[string]*userData),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'timegrid init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &jsonDocument{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	if s.store.Users == nil {
		s.store.Users = make(map[string]*userData)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) user(userID string) *userData {
	u, ok := s.store.Users[userID]
	if !ok {
		u = &userData{Timetables: make(map[string]models.DailyRecord)}
		s.store.Users[userID] = u
	}
	if u.Timetables == nil {
		u.Timetables = make(map[string]models.DailyRecord)
	}
	return u
}

func (s *JSONStore) FetchDay(_ context.Context, userID, dateString string) (models.DailyRecord, bool, error) {
	if s.store == nil {
		return models.DailyRecord{}, false, fmt.Errorf("storage not loaded")
	}

	record, ok := s.user(userID).Timetables[dateString]
	if !ok || len(record.Slots) == 0 {
		return models.DailyRecord{}, false, nil
	}
	return models.NewDailyRecord(dateString, record.Slots), true, nil
}

func (s *JSONStore) FetchMany(ctx context.Context, userID string, dateStrings []string) (map[string]models.DailyRecord, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	results := make(map[string]models.DailyRecord)
	for _, dateString := range dateStrings {
		record, ok, err := s.FetchDay(ctx, userID, dateString)
		if err != nil {
			return nil, err
		}
		if ok {
			results[dateString] = record
		}
	}
	return results, nil
}

func (s *JSONStore) SaveDay(_ context.Context, userID string, record models.DailyRecord) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.user(userID).Timetables[record.DateString] = record
	return s.save()
}

func (s *JSONStore) FetchSlotsPerDay(_ context.Context, userID string) (int, bool, error) {
	if s.store == nil {
		return 0, false, fmt.Errorf("storage not loaded")
	}

	u := s.user(userID)
	if u.SlotsPerDay == nil {
		return 0, false, nil
	}
	return *u.SlotsPerDay, true, nil
}

func (s *JSONStore) SaveSlotsPerDay(_ context.Context, userID string, count int) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.user(userID).SlotsPerDay = &count
	return s.save()
}

func (s *JSONStore) FetchDisplayMode(_ context.Context, userID string) (models.DisplayMode, bool, error) {
	if s.store == nil {
		return models.DefaultDisplayMode, false, fmt.Errorf("storage not loaded")
	}

	u := s.user(userID)
	if u.DisplayMode == nil {
		return models.DefaultDisplayMode, false, nil
	}
	mode, err := models.ParseDisplayMode(*u.DisplayMode)
	if err != nil {
		return models.DefaultDisplayMode, false, err
	}
	return mode, true, nil
}

func (s *JSONStore) SaveDisplayMode(_ context.Context, userID string, mode models.DisplayMode) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	value := string(mode)
	s.user(userID).DisplayMode = &value
	return s.save()
}

func (s *JSONStore) FetchSubjects(_ context.Context, userID string) ([]models.Subject, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	subjects := make([]models.Subject, len(s.user(userID).Subjects))
	copy(subjects, s.user(userID).Subjects)
	return subjects, nil
}

func (s *JSONStore) SaveSubject(_ context.Context, userID string, subject models.Subject) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	u := s.user(userID)
	for i, existing := range u.Subjects {
		if existing.ID == subject.ID {
			u.Subjects[i] = subject
			return s.save()
		}
	}
	u.Subjects = append(u.Subjects, subject)
	return s.save()
}

func (s *JSONStore) DeleteSubject(_ context.Context, userID, subjectID string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	u := s.user(userID)
	for i, existing := range u.Subjects {
		if existing.ID == subjectID {
			u.Subjects = append(u.Subjects[:i], u.Subjects[i+1:]...)
			return s.save()
		}
	}
	return fmt.Errorf("subject not found: %s", subjectID)
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
