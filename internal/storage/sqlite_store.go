package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/timegrid/internal/models"
	_ "modernc.org/sqlite"
)

const (
	settingSlotsPerDay = "slots_per_day"
	settingDisplayMode = "display_mode"
)

// SQLiteStore persists timetable documents in a local SQLite database. Each
// (user, date) row holds that day's saved slots as a JSON array, mirroring a
// document store keyed by user and date.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := applyMigrations(s.db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'timegrid init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	return applyMigrations(s.db)
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) FetchDay(ctx context.Context, userID, dateString string) (models.DailyRecord, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT slots FROM timetables WHERE user_id = ? AND date = ?`, userID, dateString)

	var slotsJSON string
	if err := row.Scan(&slotsJSON); err != nil {
		if err == sql.ErrNoRows {
			return models.DailyRecord{}, false, nil
		}
		return models.DailyRecord{}, false, fmt.Errorf("failed to fetch day %s: %w", dateString, err)
	}

	record, ok, err := decodeRecord(dateString, slotsJSON)
	if err != nil {
		return models.DailyRecord{}, false, fmt.Errorf("failed to parse day %s: %w", dateString, err)
	}
	return record, ok, nil
}

func (s *SQLiteStore) FetchMany(ctx context.Context, userID string, dateStrings []string) (map[string]models.DailyRecord, error) {
	if len(dateStrings) == 0 {
		return map[string]models.DailyRecord{}, nil
	}

	placeholders := strings.Repeat("?,", len(dateStrings))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, 0, len(dateStrings)+1)
	args = append(args, userID)
	for _, dateString := range dateStrings {
		args = append(args, dateString)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT date, slots FROM timetables WHERE user_id = ? AND date IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch timetables: %w", err)
	}
	defer rows.Close()

	results := make(map[string]models.DailyRecord)
	for rows.Next() {
		var dateString, slotsJSON string
		if err := rows.Scan(&dateString, &slotsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan timetable row: %w", err)
		}
		record, ok, err := decodeRecord(dateString, slotsJSON)
		if err != nil {
			return nil, fmt.Errorf("failed to parse day %s: %w", dateString, err)
		}
		if ok {
			results[dateString] = record
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to fetch timetables: %w", err)
	}

	return results, nil
}

func (s *SQLiteStore) SaveDay(ctx context.Context, userID string, record models.DailyRecord) error {
	slots := record.Slots
	if slots == nil {
		slots = []models.Slot{}
	}
	slotsJSON, err := json.Marshal(slots)
	if err != nil {
		return fmt.Errorf("failed to serialize slots: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO timetables (user_id, date, slots) VALUES (?, ?, ?)`,
		userID, record.DateString, string(slotsJSON))
	if err != nil {
		return fmt.Errorf("failed to save day %s: %w", record.DateString, err)
	}
	return nil
}

func (s *SQLiteStore) FetchSlotsPerDay(ctx context.Context, userID string) (int, bool, error) {
	value, ok, err := s.fetchSetting(ctx, userID, settingSlotsPerDay)
	if err != nil || !ok {
		return 0, false, err
	}
	count, err := strconv.Atoi(value)
	if err != nil {
		return 0, false, fmt.Errorf("invalid slots_per_day value %q: %w", value, err)
	}
	return count, true, nil
}

func (s *SQLiteStore) SaveSlotsPerDay(ctx context.Context, userID string, count int) error {
	return s.saveSetting(ctx, userID, settingSlotsPerDay, strconv.Itoa(count))
}

func (s *SQLiteStore) FetchDisplayMode(ctx context.Context, userID string) (models.DisplayMode, bool, error) {
	value, ok, err := s.fetchSetting(ctx, userID, settingDisplayMode)
	if err != nil || !ok {
		return models.DefaultDisplayMode, false, err
	}
	mode, err := models.ParseDisplayMode(value)
	if err != nil {
		return models.DefaultDisplayMode, false, err
	}
	return mode, true, nil
}

func (s *SQLiteStore) SaveDisplayMode(ctx context.Context, userID string, mode models.DisplayMode) error {
	return s.saveSetting(ctx, userID, settingDisplayMode, string(mode))
}

func (s *SQLiteStore) fetchSetting(ctx context.Context, userID, key string) (string, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE user_id = ? AND key = ?`, userID, key)

	var value string
	if err := row.Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to fetch setting %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLiteStore) saveSetting(ctx context.Context, userID, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO settings (user_id, key, value) VALUES (?, ?, ?)`,
		userID, key, value)
	if err != nil {
		return fmt.Errorf("failed to save setting %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) FetchSubjects(ctx context.Context, userID string) ([]models.Subject, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, color_index FROM subjects WHERE user_id = ? ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch subjects: %w", err)
	}
	defer rows.Close()

	var subjects []models.Subject
	for rows.Next() {
		var subject models.Subject
		if err := rows.Scan(&subject.ID, &subject.Name, &subject.ColorIndex); err != nil {
			return nil, fmt.Errorf("failed to scan subject: %w", err)
		}
		subjects = append(subjects, subject)
	}
	return subjects, rows.Err()
}

func (s *SQLiteStore) SaveSubject(ctx context.Context, userID string, subject models.Subject) error {
	// Preserve created_at on update so the listing order is stable.
	var createdAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT created_at FROM subjects WHERE user_id = ? AND id = ?`, userID, subject.ID).Scan(&createdAt)
	if err == sql.ErrNoRows {
		createdAt = time.Now().UTC().Format(time.RFC3339Nano)
	} else if err != nil {
		return fmt.Errorf("failed to check subject existence: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO subjects (user_id, id, name, color_index, created_at) VALUES (?, ?, ?, ?, ?)`,
		userID, subject.ID, subject.Name, subject.ColorIndex, createdAt)
	if err != nil {
		return fmt.Errorf("failed to save subject %s: %w", subject.ID, err)
	}
	return nil
}

func (s *SQLiteStore) DeleteSubject(ctx context.Context, userID, subjectID string) error {
	// No cascade: slots referencing the subject keep their dangling
	// reference and render as unassigned.
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM subjects WHERE user_id = ? AND id = ?`, userID, subjectID)
	if err != nil {
		return fmt.Errorf("failed to delete subject %s: %w", subjectID, err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("subject not found: %s", subjectID)
	}
	return nil
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

// decodeRecord parses a stored slots document. Rows holding an empty slot
// array are treated as absent, matching the write path where an
// all-unassigned day saves as an empty set.
func decodeRecord(dateString, slotsJSON string) (models.DailyRecord, bool, error) {
	var slots []models.Slot
	if err := json.Unmarshal([]byte(slotsJSON), &slots); err != nil {
		return models.DailyRecord{}, false, err
	}
	if len(slots) == 0 {
		return models.DailyRecord{}, false, nil
	}
	return models.NewDailyRecord(dateString, slots), true, nil
}
