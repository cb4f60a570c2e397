package storage

import (
	"context"

	"github.com/julianstephens/timegrid/internal/models"
)

// Provider is the durable document store behind the timetable. Records are
// keyed by (user, date); only subject-assigned slots are persisted, so a day
// whose saved slot set is empty reads back as absent.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Timetable records
	FetchDay(ctx context.Context, userID, dateString string) (models.DailyRecord, bool, error)
	// FetchMany fetches a batch of dates in one call. Absent dates are
	// simply missing from the result; the call is all-or-nothing and never
	// returns a partial map alongside an error.
	FetchMany(ctx context.Context, userID string, dateStrings []string) (map[string]models.DailyRecord, error)
	SaveDay(ctx context.Context, userID string, record models.DailyRecord) error

	// Settings
	FetchSlotsPerDay(ctx context.Context, userID string) (int, bool, error)
	SaveSlotsPerDay(ctx context.Context, userID string, count int) error

	// Display mode preference
	FetchDisplayMode(ctx context.Context, userID string) (models.DisplayMode, bool, error)
	SaveDisplayMode(ctx context.Context, userID string, mode models.DisplayMode) error

	// Subjects
	FetchSubjects(ctx context.Context, userID string) ([]models.Subject, error)
	SaveSubject(ctx context.Context, userID string, subject models.Subject) error
	DeleteSubject(ctx context.Context, userID, subjectID string) error

	// Utils
	GetConfigPath() string
}
