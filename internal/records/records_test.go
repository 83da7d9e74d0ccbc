package records_test

import (
	"testing"

	"github.com/ruminaider/template-switcher/internal/records"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	st, err := records.ParseStatus("auto-draft")
	require.NoError(t, err)
	assert.Equal(t, records.StatusAutoDraft, st)

	_, err = records.ParseStatus("published")
	assert.Error(t, err)
}

func TestStatusCustomized(t *testing.T) {
	assert.False(t, records.StatusAutoDraft.Customized())
	assert.True(t, records.StatusPublish.Customized())
	assert.True(t, records.StatusDraft.Customized())
}

func TestTemplateRecordValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		r := records.TemplateRecord{ID: 1, Slug: "index", Status: records.StatusPublish}
		assert.NoError(t, r.Validate())
	})

	t.Run("zero id", func(t *testing.T) {
		r := records.TemplateRecord{Slug: "index", Status: records.StatusPublish}
		assert.ErrorIs(t, r.Validate(), records.ErrInvalidRecord)
	})

	t.Run("missing slug", func(t *testing.T) {
		r := records.TemplateRecord{ID: 3, Status: records.StatusPublish}
		assert.ErrorIs(t, r.Validate(), records.ErrInvalidRecord)
	})

	t.Run("unknown status", func(t *testing.T) {
		r := records.TemplateRecord{ID: 3, Slug: "home", Status: "weird"}
		assert.ErrorIs(t, r.Validate(), records.ErrInvalidRecord)
	})
}

func TestTemplatePartRecordValidate(t *testing.T) {
	r := records.TemplatePartRecord{ID: 9, Slug: "header", Status: records.StatusAutoDraft}
	assert.ErrorIs(t, r.Validate(), records.ErrInvalidRecord, "theme is required")

	r.Theme = "twentytwentyone-blocks"
	assert.NoError(t, r.Validate())
}

func TestQueryMatches(t *testing.T) {
	part := records.TemplatePartRecord{
		ID: 1, Slug: "header", Status: records.StatusPublish, Theme: "tt1",
	}

	assert.True(t, records.Query{}.MatchesTemplatePart(part))
	assert.True(t, records.Query{Theme: "tt1"}.MatchesTemplatePart(part))
	assert.False(t, records.Query{Theme: "other"}.MatchesTemplatePart(part))
	assert.True(t, records.Query{
		Status: []records.Status{records.StatusPublish, records.StatusAutoDraft},
	}.MatchesTemplatePart(part))
	assert.False(t, records.Query{
		Status: []records.Status{records.StatusDraft},
	}.MatchesTemplatePart(part))

	tmpl := records.TemplateRecord{ID: 2, Slug: "home", Status: records.StatusAutoDraft}
	assert.True(t, records.Query{Slug: "home"}.MatchesTemplate(tmpl))
	assert.False(t, records.Query{Slug: "index"}.MatchesTemplate(tmpl))
}
