package switcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelection_Hover(t *testing.T) {
	var s Selection
	_, ok := s.Hovered()
	assert.False(t, ok)

	s.Hover(1, KindTemplate)
	s.Hover(2, KindTemplate)
	h, ok := s.Hovered()
	assert.True(t, ok)
	assert.Equal(t, HoverTarget{ID: 2, Kind: KindTemplate}, h)

	s.ClearHover()
	_, ok = s.Hovered()
	assert.False(t, ok)
}

func TestSelection_OverlaysAreIndependent(t *testing.T) {
	var s Selection
	s.SetThemePreview(true)
	s.OpenAddTemplate()
	assert.True(t, s.ThemePreviewVisible())
	assert.True(t, s.AddTemplateOpen())

	s.SetThemePreview(false)
	assert.True(t, s.AddTemplateOpen())

	s.CloseAddTemplate()
	assert.False(t, s.AddTemplateOpen())
	assert.False(t, s.ThemePreviewVisible())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "template", KindTemplate.String())
	assert.Equal(t, "template-part", KindTemplatePart.String())
	assert.Equal(t, "unknown", Kind(9).String())
}
