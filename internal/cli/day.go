package cli

import (
	"context"
	"fmt"

	"github.com/julianstephens/timegrid/internal/dateutil"
	"github.com/julianstephens/timegrid/internal/merge"
	"github.com/julianstephens/timegrid/internal/models"
)

type DayCmd struct {
	Date string `arg:"" help:"Date to show (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *DayCmd) Run(cliCtx *Context) error {
	if err := cliCtx.Store.Load(); err != nil {
		return err
	}

	user, err := cliCtx.UserID()
	if err != nil {
		return err
	}

	day, err := parseDateArg(c.Date)
	if err != nil {
		return err
	}
	dateString := dateutil.Format(day)

	ctx := context.Background()

	slotsPerDay, ok, err := cliCtx.Store.FetchSlotsPerDay(ctx, user)
	if err != nil {
		return err
	}
	if !ok {
		slotsPerDay = models.DefaultSlotsPerDay
	}
	slotsPerDay = models.ClampSlotsPerDay(slotsPerDay)

	subjects, err := cliCtx.Store.FetchSubjects(ctx, user)
	if err != nil {
		return err
	}

	saved, found, err := cliCtx.Store.FetchDay(ctx, user, dateString)
	if err != nil {
		return err
	}
	var savedRecord *models.DailyRecord
	if found {
		savedRecord = &saved
	}
	record := merge.Merge(dateString, savedRecord, slotsPerDay)

	fmt.Printf("Timetable for %s (%d/%d done):\n\n", dateString, record.CompletedCount(), len(record.Slots))
	for _, slot := range record.Slots {
		fmt.Println(formatSlotLine(slot, subjects))
	}

	return nil
}
