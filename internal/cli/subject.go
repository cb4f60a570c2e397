package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/julianstephens/timegrid/internal/models"
	"github.com/julianstephens/timegrid/internal/syncer"
)

type SubjectAddCmd struct {
	Name  string `arg:"" help:"Subject name."`
	Color int    `help:"Color palette index." default:"0"`
}

func (c *SubjectAddCmd) Run(cliCtx *Context) error {
	if err := cliCtx.Store.Load(); err != nil {
		return err
	}

	user, err := cliCtx.UserID()
	if err != nil {
		return err
	}

	name := strings.TrimSpace(c.Name)
	if name == "" {
		return &syncer.ValidationError{Field: "name"}
	}

	subject := models.NewSubject(name, c.Color)
	if err := cliCtx.Store.SaveSubject(context.Background(), user, subject); err != nil {
		return err
	}

	fmt.Printf("Added subject %q (%s)\n", subject.Name, subject.ID)
	return nil
}

type SubjectListCmd struct{}

func (c *SubjectListCmd) Run(cliCtx *Context) error {
	if err := cliCtx.Store.Load(); err != nil {
		return err
	}

	user, err := cliCtx.UserID()
	if err != nil {
		return err
	}

	subjects, err := cliCtx.Store.FetchSubjects(context.Background(), user)
	if err != nil {
		return err
	}

	if len(subjects) == 0 {
		fmt.Println("No subjects defined. Add one with 'timegrid subject add'.")
		return nil
	}

	for _, subject := range subjects {
		fmt.Printf("%-36s  color %d  %s\n", subject.ID, subject.ColorIndex, subject.Name)
	}
	return nil
}

type SubjectDeleteCmd struct {
	ID string `arg:"" help:"Subject id to delete."`
}

func (c *SubjectDeleteCmd) Run(cliCtx *Context) error {
	if err := cliCtx.Store.Load(); err != nil {
		return err
	}

	user, err := cliCtx.UserID()
	if err != nil {
		return err
	}

	if err := cliCtx.Store.DeleteSubject(context.Background(), user, c.ID); err != nil {
		return err
	}

	// Slots referencing the subject are left alone and render as
	// unassigned from now on.
	fmt.Printf("Deleted subject %s\n", c.ID)
	return nil
}
