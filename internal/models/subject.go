package models

import "github.com/google/uuid"

// Subject is a user-defined activity category with a display color.
// Slots reference subjects by ID; deleting a subject leaves dangling
// references that render as "unassigned".
type Subject struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ColorIndex int    `json:"color_index"`
}

// NewSubject returns a subject with a generated ID.
func NewSubject(name string, colorIndex int) Subject {
	return Subject{
		ID:         uuid.NewString(),
		Name:       name,
		ColorIndex: colorIndex,
	}
}

// SubjectName resolves a nullable subject reference to a display name.
// Dangling or unassigned references resolve to "unassigned".
func SubjectName(subjects []Subject, subjectID *string) string {
	if subjectID == nil {
		return "unassigned"
	}
	for _, s := range subjects {
		if s.ID == *subjectID {
			return s.Name
		}
	}
	return "unassigned"
}

// SubjectColorIndex resolves a nullable subject reference to its color index.
// Returns false when the reference is nil or dangling.
func SubjectColorIndex(subjects []Subject, subjectID *string) (int, bool) {
	if subjectID == nil {
		return 0, false
	}
	for _, s := range subjects {
		if s.ID == *subjectID {
			return s.ColorIndex, true
		}
	}
	return 0, false
}
