package xapi

// NilRegistration is reported as context.registration when the actor's course
// section cannot be resolved.
const NilRegistration = "00000000-0000-4000-B000-000000000000"

// Identity is a resolved person: the actor, an instructor, or a rescored student.
type Identity struct {
	Email string
	Name  string
}

// ContentItem is the page or assessment an event is about.
type ContentItem struct {
	ID        string
	Title     string
	Permalink string
}

// Category is one entry of a content item's category chain. ParentLink is empty
// when the category has no parent category.
type Category struct {
	ID         string
	Link       string
	ParentLink string
}

// ParentLevel carries the objectives of the level that contains an assessment.
// Permalink is empty when no objective rows were found.
type ParentLevel struct {
	Permalink  string
	Objectives []string
}

// ContextData is everything the builder needs from the surrounding application.
// It is resolved fresh for every event and never modified by the builder.
type ContextData struct {
	// Subject is nil when the event's content item does not exist.
	Subject *ContentItem

	// Actor is nil when the acting user does not exist.
	Actor *Identity

	Categories  []Category
	ParentLevel ParentLevel

	// Registration is the actor's course-section UUID; empty means unresolved.
	Registration string
	Instructor   Identity

	// Student is the user named by a rescored payload, nil when unresolved.
	Student *Identity
}
