package xapi

import (
	"bytes"
	"encoding/json"
)

const (
	objectTypeAgent    = "Agent"
	objectTypeActivity = "Activity"
	languageTag        = "en-US"
	revisionOriginal   = "original"
	contextParentKey   = "parent"
)

// LanguageMap is an xAPI language map keyed by RFC 5646 tag.
type LanguageMap map[string]string

// Agent identifies a person by mailbox.
type Agent struct {
	Mbox       string `json:"mbox"`
	Name       string `json:"name"`
	ObjectType string `json:"objectType"`
}

func newAgent(id Identity) Agent {
	return Agent{
		Mbox:       "mailto:" + id.Email,
		Name:       id.Name,
		ObjectType: objectTypeAgent,
	}
}

// VerbRef is the statement's verb block.
type VerbRef struct {
	ID      string      `json:"id"`
	Display LanguageMap `json:"display"`
}

// Extension is the value stored under an activity definition extension key.
type Extension struct {
	Name string `json:"name"`
}

// Definition describes the statement object. Extensions is always serialized,
// as an empty object when there are none.
type Definition struct {
	Name        LanguageMap          `json:"name"`
	Description LanguageMap          `json:"description"`
	Type        string               `json:"type"`
	Extensions  map[string]Extension `json:"extensions"`
}

// Object is the activity the actor acted upon.
type Object struct {
	ID         string     `json:"id"`
	Definition Definition `json:"definition"`
	ObjectType string     `json:"objectType"`
}

// ActivityRef points at a related activity, e.g. a parent in contextActivities.
type ActivityRef struct {
	ID         string `json:"id"`
	ObjectType string `json:"objectType"`
}

// Score is the result score block. Scaled is omitted for rating scores.
type Score struct {
	Scaled *float64 `json:"scaled,omitempty"`
	Raw    float64  `json:"raw"`
	Min    float64  `json:"min"`
	Max    float64  `json:"max"`
}

// Result is the outcome block. A zero Result serializes as {}.
type Result struct {
	Success  *bool   `json:"success,omitempty"`
	Score    *Score  `json:"score,omitempty"`
	Response *string `json:"response,omitempty"`
	Duration string  `json:"duration,omitempty"`
}

// IsEmpty reports whether the result carries no fields.
func (r Result) IsEmpty() bool {
	return r.Success == nil && r.Score == nil && r.Response == nil && r.Duration == ""
}

// Context is the statement context block. ContextActivities serializes as {}
// when the verb defines no parents.
type Context struct {
	Registration      string                   `json:"registration"`
	ContextActivities map[string][]ActivityRef `json:"contextActivities"`
	Revision          string                   `json:"revision"`
	Instructor        Agent                    `json:"instructor"`
	Platform          string                   `json:"platform"`
}

// Parents returns the parent activities and whether the parent list is present at all.
func (c Context) Parents() ([]ActivityRef, bool) {
	parents, ok := c.ContextActivities[contextParentKey]
	return parents, ok
}

// Statement is a complete xAPI statement. The LRS assigns id and stored.
type Statement struct {
	Actor     Agent   `json:"actor"`
	Verb      VerbRef `json:"verb"`
	Object    Object  `json:"object"`
	Context   Context `json:"context"`
	Result    Result  `json:"result"`
	Version   string  `json:"version"`
	Authority Agent   `json:"authority"`
	Timestamp string  `json:"timestamp"`
}

// Marshal serializes the statement as compact JSON without HTML escaping.
func (s *Statement) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
