package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/timegrid/internal/auth"
	"github.com/julianstephens/timegrid/internal/dateutil"
	"github.com/julianstephens/timegrid/internal/models"
	"github.com/julianstephens/timegrid/internal/storage"
	"github.com/julianstephens/timegrid/internal/syncer"
)

type Context struct {
	Store storage.Provider
	Auth  auth.Provider
}

// UserID resolves the active user from the identity provider.
func (c *Context) UserID() (string, error) {
	id, ok := c.Auth.CurrentUserID()
	if !ok {
		return "", &syncer.AuthError{Reason: "signed out"}
	}
	return id, nil
}

func parseDateArg(arg string) (time.Time, error) {
	if arg == "today" {
		return time.Now(), nil
	}
	parsed, err := dateutil.Parse(arg)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format, use YYYY-MM-DD or 'today': %w", err)
	}
	return parsed, nil
}

func formatSlotLine(slot models.Slot, subjects []models.Subject) string {
	name := models.SubjectName(subjects, slot.SubjectID)

	status := " "
	if slot.IsCompleted {
		status = "x"
	}

	minutes := ""
	if slot.Minutes > 0 {
		minutes = fmt.Sprintf("%d min", slot.Minutes)
	}

	return fmt.Sprintf("  [%s] %d. %-20s %s", status, slot.DisplayOrder+1, name, minutes)
}
