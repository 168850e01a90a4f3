package xapi

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// timestampLayout matches the ISO 8601 form LRS deployments already hold
// (numeric offset, never "Z").
const timestampLayout = "2006-01-02T15:04:05-07:00"

// Settings are the process-wide statement constants. They are fixed at startup.
type Settings struct {
	// CatalogURL prefixes verb ids, activity types and extension keys.
	CatalogURL string
	Platform   string
	Version    string
	Authority  Identity
	Location   *time.Location
}

// LearningEvent is one learner action to report.
type LearningEvent struct {
	ActorID   string
	Verb      Verb
	SubjectID string

	// Payload must match Verb. A nil payload is accepted for viewed.
	Payload Payload

	// Timestamp is a unix time in seconds; zero or negative means "now".
	Timestamp int64
}

// Builder turns learning events into xAPI statements.
type Builder struct {
	settings Settings
	nowFn    func() time.Time
}

// NewBuilder creates a statement builder with the given settings.
func NewBuilder(settings Settings) *Builder {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	return &Builder{
		settings: settings,
		nowFn:    time.Now,
	}
}

// Settings returns the builder's statement constants.
func (b *Builder) Settings() Settings {
	return b.settings
}

// Build validates the event and produces its statement. Validation happens
// before anything else, so a failed build has no side effects.
func (b *Builder) Build(evt LearningEvent, data ContextData) (*Statement, error) {
	payload, err := checkEvent(evt)
	if err != nil {
		return nil, err
	}
	if data.Subject == nil {
		return nil, fmt.Errorf("%w: %q", ErrMissingSubject, evt.SubjectID)
	}
	if data.Actor == nil {
		return nil, fmt.Errorf("%w: %q", ErrMissingActor, evt.ActorID)
	}

	catalog := b.settings.CatalogURL
	desc := payload.describe(data, catalog)

	extensions := desc.Extensions
	if extensions == nil {
		extensions = map[string]Extension{}
	}

	contextActivities := map[string][]ActivityRef{}
	if parents, ok := payload.parents(data); ok {
		contextActivities[contextParentKey] = parents
	}

	return &Statement{
		Actor: newAgent(*data.Actor),
		Verb: VerbRef{
			ID:      catalog + "verbs/" + payload.verbID(),
			Display: LanguageMap{languageTag: string(payload.Verb())},
		},
		Object: Object{
			ID: data.Subject.Permalink,
			Definition: Definition{
				Name:        LanguageMap{languageTag: data.Subject.Title + desc.NameSuffix},
				Description: LanguageMap{languageTag: desc.Description},
				Type:        catalog + desc.Type,
				Extensions:  extensions,
			},
			ObjectType: objectTypeActivity,
		},
		Context: Context{
			Registration:      registration(data.Registration),
			ContextActivities: contextActivities,
			Revision:          revisionOriginal,
			Instructor:        newAgent(data.Instructor),
			Platform:          b.settings.Platform,
		},
		Result:    payload.result(data),
		Version:   b.settings.Version,
		Authority: newAgent(b.settings.Authority),
		Timestamp: b.timestamp(evt.Timestamp),
	}, nil
}

// checkEvent validates the verb and returns the payload to build from.
func checkEvent(evt LearningEvent) (Payload, error) {
	if !evt.Verb.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidVerb, evt.Verb)
	}

	payload := evt.Payload
	if payload == nil {
		if evt.Verb != VerbViewed {
			return nil, fmt.Errorf("%w: missing payload for %q", ErrInvalidPayload, evt.Verb)
		}
		payload = Viewed{}
	}
	if payload.Verb() != evt.Verb {
		return nil, fmt.Errorf("%w: %s payload for %q event", ErrInvalidPayload, payload.Verb(), evt.Verb)
	}
	if err := payload.validate(); err != nil {
		return nil, err
	}
	return payload, nil
}

// timestamp uses the event's own time when it has one, the current time otherwise.
func (b *Builder) timestamp(unix int64) string {
	t := b.nowFn()
	if unix > 0 {
		t = time.Unix(unix, 0)
	}
	return t.In(b.settings.Location).Format(timestampLayout)
}

func registration(sectionUUID string) string {
	if sectionUUID == "" {
		return NilRegistration
	}
	if _, err := uuid.Parse(sectionUUID); err != nil {
		return NilRegistration
	}
	return sectionUUID
}
