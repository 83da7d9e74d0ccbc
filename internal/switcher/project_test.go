package switcher

import (
	"testing"

	"github.com/ruminaider/template-switcher/internal/home"
	"github.com/ruminaider/template-switcher/internal/records"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTemplates() []records.TemplateRecord {
	return []records.TemplateRecord{
		{ID: 5, Slug: "front-page", Status: records.StatusPublish},
		{ID: 42, Slug: "index", Status: records.StatusAutoDraft},
		{ID: 7, Slug: "home", Status: records.StatusAutoDraft},
	}
}

func sampleParts() []records.TemplatePartRecord {
	return []records.TemplatePartRecord{
		{ID: 11, Slug: "header", Status: records.StatusPublish, Theme: "tt1-blocks"},
		{ID: 12, Slug: "footer", Status: records.StatusAutoDraft, Theme: "tt1-blocks"},
		{ID: 13, Slug: "sidebar", Status: records.StatusDraft, Theme: "tt1-blocks"},
		{ID: 14, Slug: "header", Status: records.StatusPublish, Theme: "other-theme"},
		{ID: 15, Slug: "old", Status: records.StatusTrash, Theme: "tt1-blocks"},
	}
}

func homeMarked(choices []Choice) []records.ID {
	var ids []records.ID
	for _, c := range choices {
		if c.IsHome {
			ids = append(ids, c.Value)
		}
	}
	return ids
}

func TestProjectTemplates_KeepsStoreOrder(t *testing.T) {
	choices := ProjectTemplates(sampleTemplates(), home.Unresolved())
	require.Len(t, choices, 3)
	assert.Equal(t, "front-page", choices[0].Slug)
	assert.Equal(t, "index", choices[1].Slug)
	assert.Equal(t, "home", choices[2].Slug)
	assert.Equal(t, records.ID(5), choices[0].Value)
}

func TestProjectTemplates_HomeMarker(t *testing.T) {
	t.Run("resolved id", func(t *testing.T) {
		choices := ProjectTemplates(sampleTemplates(), home.Of(42))
		assert.Equal(t, []records.ID{42}, homeMarked(choices))
		assert.Equal(t, "index "+HomeMarker, choices[1].Label)
	})

	t.Run("unresolved", func(t *testing.T) {
		assert.Empty(t, homeMarked(ProjectTemplates(sampleTemplates(), home.Unresolved())))
	})

	t.Run("none", func(t *testing.T) {
		assert.Empty(t, homeMarked(ProjectTemplates(sampleTemplates(), home.None())))
	})

	t.Run("id not in list", func(t *testing.T) {
		assert.Empty(t, homeMarked(ProjectTemplates(sampleTemplates(), home.Of(99))))
	})
}

func TestProjectTemplates_CustomizedMarker(t *testing.T) {
	choices := ProjectTemplates(sampleTemplates(), home.None())
	assert.True(t, choices[0].Customized)
	assert.Equal(t, "front-page "+CustomizedMarker, choices[0].Label)
	assert.False(t, choices[1].Customized)
	assert.Equal(t, "index", choices[1].Label)
}

func TestProjectTemplates_BothMarkers(t *testing.T) {
	choices := ProjectTemplates(sampleTemplates(), home.Of(5))
	assert.Equal(t, "front-page "+HomeMarker+" "+CustomizedMarker, choices[0].Label)
}

func TestProjectTemplateParts_Filters(t *testing.T) {
	choices := ProjectTemplateParts(sampleParts(), "tt1-blocks")
	require.Len(t, choices, 2)
	assert.Equal(t, records.ID(11), choices[0].Value)
	assert.Equal(t, records.ID(12), choices[1].Value)
	for _, c := range choices {
		assert.False(t, c.IsHome, "template parts never carry a home marker")
	}
	assert.Equal(t, "header "+CustomizedMarker, choices[0].Label)
	assert.Equal(t, "footer", choices[1].Label)
}

func TestProjectTemplateParts_ExcludesOtherStatuses(t *testing.T) {
	for _, st := range []records.Status{
		records.StatusDraft, records.StatusPending, records.StatusPrivate,
		records.StatusFuture, records.StatusTrash,
	} {
		parts := []records.TemplatePartRecord{{ID: 1, Slug: "x", Status: st, Theme: "t"}}
		assert.Empty(t, ProjectTemplateParts(parts, "t"), "status %s", st)
	}
}

func TestProjection_Idempotent(t *testing.T) {
	a := ProjectTemplates(sampleTemplates(), home.Of(7))
	b := ProjectTemplates(sampleTemplates(), home.Of(7))
	assert.Equal(t, a, b)

	pa := ProjectTemplateParts(sampleParts(), "tt1-blocks")
	pb := ProjectTemplateParts(sampleParts(), "tt1-blocks")
	assert.Equal(t, pa, pb)
}

func TestChoiceListFind(t *testing.T) {
	l := ChoiceList{Items: ProjectTemplates(sampleTemplates(), home.None()), Resolved: true}
	c, ok := l.Find(7)
	require.True(t, ok)
	assert.Equal(t, "home", c.Slug)

	_, ok = l.Find(100)
	assert.False(t, ok)
}

func TestMissingTemplateSlugs(t *testing.T) {
	missing := MissingTemplateSlugs(sampleTemplates(), []records.ID{5, 42})
	assert.NotContains(t, missing, "front-page")
	assert.NotContains(t, missing, "index")
	assert.Contains(t, missing, "home", "id 7 is not a candidate")
	assert.Contains(t, missing, "404")
	assert.Equal(t, "home", missing[0])
}
