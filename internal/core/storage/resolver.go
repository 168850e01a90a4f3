package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/aevon-lab/xapi-connect/internal/xapi"
)

// Resolver gathers the ContextData a statement needs from a Directory.
// Records that do not exist are left empty for the builder to judge; only
// store failures are returned as errors.
type Resolver struct {
	dir Directory
}

// NewResolver creates a resolver over dir.
func NewResolver(dir Directory) *Resolver {
	if dir == nil {
		panic("storage: directory must not be nil")
	}
	return &Resolver{dir: dir}
}

// Resolve looks up everything evt refers to.
func (r *Resolver) Resolve(ctx context.Context, evt xapi.LearningEvent) (xapi.ContextData, error) {
	var data xapi.ContextData

	content, err := r.dir.ContentItem(ctx, evt.SubjectID)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return data, fmt.Errorf("failed to load content item %q: %w", evt.SubjectID, err)
	default:
		item := content.ContentItem
		data.Subject = &item
	}

	actor, err := r.dir.User(ctx, evt.ActorID)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return data, fmt.Errorf("failed to load actor %q: %w", evt.ActorID, err)
	default:
		id := actor.Identity()
		data.Actor = &id
	}

	if content != nil {
		data.Categories, err = r.dir.Categories(ctx, content.ID)
		if err != nil {
			return data, fmt.Errorf("failed to load categories of %q: %w", content.ID, err)
		}

		if (evt.Verb == xapi.VerbFailed || evt.Verb == xapi.VerbCompleted) && len(data.Categories) > 0 {
			data.ParentLevel, err = r.dir.LevelObjectives(ctx, data.Categories[0].ID, content.Level)
			if err != nil {
				return data, fmt.Errorf("failed to load level objectives: %w", err)
			}
		}
	}

	section := ""
	if actor != nil {
		section = actor.Section
	}
	if err := r.resolveSection(ctx, section, &data); err != nil {
		return data, err
	}

	if rescored, ok := evt.Payload.(xapi.Rescored); ok {
		student, err := r.dir.User(ctx, rescored.StudentID)
		switch {
		case errors.Is(err, ErrNotFound):
		case err != nil:
			return data, fmt.Errorf("failed to load student %q: %w", rescored.StudentID, err)
		default:
			id := student.Identity()
			data.Student = &id
		}
	}

	return data, nil
}

// resolveSection sets the registration and picks the instructor: the first
// instructor overall, replaced by any later one teaching the actor's section.
func (r *Resolver) resolveSection(ctx context.Context, label string, data *xapi.ContextData) error {
	if label != "" {
		section, err := r.dir.Section(ctx, label)
		switch {
		case errors.Is(err, ErrNotFound):
		case err != nil:
			return fmt.Errorf("failed to load section %q: %w", label, err)
		default:
			data.Registration = section.UUID
		}
	}

	instructors, err := r.dir.UsersByRole(ctx, RoleInstructor, "")
	if err != nil {
		return fmt.Errorf("failed to list instructors: %w", err)
	}
	for i, in := range instructors {
		if i == 0 || in.Section == label {
			data.Instructor = in.Identity()
		}
	}
	return nil
}
