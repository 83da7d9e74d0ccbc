package wpapi

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ruminaider/template-switcher/internal/records"
)

// APIError is the error body returned by the REST API.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Status int `json:"status"`
	} `json:"data"`
	// StatusCode is the HTTP status code of the response.
	StatusCode int `json:"-"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("wpapi: %s (%d): %s", e.Code, e.StatusCode, e.Message)
}

// Common REST error codes.
const (
	ErrCodeForbidden    = "rest_forbidden"
	ErrCodeNoRoute      = "rest_no_route"
	ErrCodeInvalidParam = "rest_invalid_param"
	ErrCodeCannotCreate = "rest_cannot_create"
)

// rawOrRendered decodes fields that are either a plain string or an object
// with raw/rendered variants.
type rawOrRendered struct {
	Raw      string `json:"raw"`
	Rendered string `json:"rendered"`
}

func (r *rawOrRendered) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		r.Raw, r.Rendered = s, s
		return nil
	}
	type plain rawOrRendered
	return json.Unmarshal(data, (*plain)(r))
}

func (r rawOrRendered) String() string {
	if r.Raw != "" {
		return r.Raw
	}
	return r.Rendered
}

type wireRecord struct {
	ID      json.RawMessage `json:"id"`
	WPID    *int64          `json:"wp_id"`
	Slug    string          `json:"slug"`
	Status  string          `json:"status"`
	Title   rawOrRendered   `json:"title"`
	Content rawOrRendered   `json:"content"`
	Theme   string          `json:"theme"`
	Area    string          `json:"area"`
}

// errNoPostID marks records served straight from theme files. They carry a
// "theme//slug" id and a null or zero wp_id until they are customized.
var errNoPostID = errors.New("record has no post id")

func (w wireRecord) id() (records.ID, error) {
	if w.WPID != nil && *w.WPID > 0 {
		return records.ID(*w.WPID), nil
	}
	id, err := parseID(w.ID)
	if err != nil || id <= 0 {
		return 0, errNoPostID
	}
	return id, nil
}

func (w wireRecord) common() (records.ID, records.Status, error) {
	id, err := w.id()
	if err != nil {
		return 0, "", fmt.Errorf("%w: %s: %w", records.ErrInvalidRecord, string(w.ID), err)
	}
	status, err := records.ParseStatus(w.Status)
	if err != nil {
		return 0, "", fmt.Errorf("%w: record %d: %v", records.ErrInvalidRecord, id, err)
	}
	return id, status, nil
}

func (w wireRecord) template() (records.TemplateRecord, error) {
	id, status, err := w.common()
	if err != nil {
		return records.TemplateRecord{}, err
	}
	r := records.TemplateRecord{
		ID:      id,
		Slug:    w.Slug,
		Status:  status,
		Title:   w.Title.String(),
		Content: w.Content.String(),
		Theme:   w.Theme,
	}
	return r, r.Validate()
}

func (w wireRecord) templatePart() (records.TemplatePartRecord, error) {
	id, status, err := w.common()
	if err != nil {
		return records.TemplatePartRecord{}, err
	}
	r := records.TemplatePartRecord{
		ID:      id,
		Slug:    w.Slug,
		Status:  status,
		Title:   w.Title.String(),
		Content: w.Content.String(),
		Theme:   w.Theme,
		Area:    w.Area,
	}
	return r, r.Validate()
}

type wireTheme struct {
	Stylesheet  string        `json:"stylesheet"`
	Template    string        `json:"template"`
	Name        rawOrRendered `json:"name"`
	Description rawOrRendered `json:"description"`
	Version     string        `json:"version"`
	Author      rawOrRendered `json:"author"`
	ThemeURI    rawOrRendered `json:"theme_uri"`
}

func (w wireTheme) theme() records.ThemeRecord {
	return records.ThemeRecord{
		Stylesheet:  w.Stylesheet,
		Template:    w.Template,
		Name:        w.Name.String(),
		Description: w.Description.String(),
		Version:     w.Version,
		Author:      w.Author.String(),
		ThemeURI:    w.ThemeURI.String(),
	}
}
