package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ruminaider/template-switcher/internal/config"
	"github.com/ruminaider/template-switcher/internal/home"
	"github.com/ruminaider/template-switcher/internal/records"
	"github.com/ruminaider/template-switcher/internal/switcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFixture = `theme:
  stylesheet: tt1-blocks
  name: TT1 Blocks
  version: 0.4.3
home:
  success: true
  id: null
  post_name: home
templates:
  - id: 5
    slug: front-page
    status: publish
  - id: 42
    slug: index
    status: auto-draft
  - id: 7
    slug: home
    status: auto-draft
template_parts:
  - id: 11
    slug: header
    status: publish
  - id: 12
    slug: footer
    status: draft
`

// withFlags points the persistent flags at temp files for one test.
func withFlags(t *testing.T, cfg string) (cfgFile string) {
	t.Helper()
	dir := t.TempDir()
	fixtureFile := filepath.Join(dir, "site.yaml")
	require.NoError(t, os.WriteFile(fixtureFile, []byte(testFixture), 0o644))
	cfgFile = filepath.Join(dir, "config.yaml")
	if cfg != "" {
		require.NoError(t, os.WriteFile(cfgFile, []byte(cfg), 0o600))
	}

	prevConfig, prevFixture, prevLog, prevDebug := configPath, fixturePath, logFile, debug
	configPath, fixturePath, logFile, debug = cfgFile, fixtureFile, "", false
	t.Cleanup(func() {
		configPath, fixturePath, logFile, debug = prevConfig, prevFixture, prevLog, prevDebug
	})
	return cfgFile
}

func TestListCmd(t *testing.T) {
	withFlags(t, "active:\n  kind: template\n  id: 42\n")

	var buf bytes.Buffer
	listCmd.SetOut(&buf)
	t.Cleanup(func() { listCmd.SetOut(nil) })
	require.NoError(t, listCmd.RunE(listCmd, nil))

	out := buf.String()
	assert.Contains(t, out, "ACTIVE\n  template index (id 42)\n")
	assert.Contains(t, out, "TEMPLATES")
	assert.Contains(t, out, "front-page "+switcher.CustomizedMarker)
	assert.Contains(t, out, "home "+switcher.HomeMarker)
	assert.Contains(t, out, "✓ index")
	assert.Contains(t, out, "header")
	assert.NotContains(t, out, "footer", "draft parts are not listed")
	assert.Contains(t, out, "TT1 Blocks (tt1-blocks) 0.4.3")
}

func TestListCmd_DefaultsToIndex(t *testing.T) {
	withFlags(t, "")

	var buf bytes.Buffer
	listCmd.SetOut(&buf)
	t.Cleanup(func() { listCmd.SetOut(nil) })
	require.NoError(t, listCmd.RunE(listCmd, nil))

	assert.Contains(t, buf.String(), "ACTIVE\n  template index (id 42)\n")
	assert.Contains(t, buf.String(), "✓ index")
}

func TestListCmd_MissingActive(t *testing.T) {
	cfgFile := withFlags(t, "active:\n  kind: template\n  id: 999\n")

	var buf bytes.Buffer
	listCmd.SetOut(&buf)
	t.Cleanup(func() { listCmd.SetOut(nil) })
	err := listCmd.RunE(listCmd, nil)

	var lookupErr *switcher.LookupError
	require.True(t, errors.As(err, &lookupErr), "got %v", err)
	assert.Equal(t, records.ID(999), lookupErr.ID)
	assert.Contains(t, err.Error(), cfgFile)
	assert.Empty(t, buf.String())
}

func TestListCmd_MissingActivePart(t *testing.T) {
	withFlags(t, "active:\n  kind: template-part\n  id: 12\n")

	err := listCmd.RunE(listCmd, nil)
	assert.ErrorIs(t, err, switcher.ErrActiveNotFound, "draft parts are not choices")
}

func TestHomeCmd(t *testing.T) {
	withFlags(t, "")

	var buf bytes.Buffer
	homeCmd.SetOut(&buf)
	t.Cleanup(func() { homeCmd.SetOut(nil) })
	require.NoError(t, homeCmd.RunE(homeCmd, nil))

	assert.Equal(t, switcher.HomeMarker+" home (id 7)\n", buf.String())
}

func TestOpenSession_NoSource(t *testing.T) {
	withFlags(t, "")
	fixturePath = ""

	_, err := openSession()
	assert.ErrorIs(t, err, config.ErrNoSource)
}

func TestFormatHome(t *testing.T) {
	list := switcher.ChoiceList{Resolved: true, Items: []switcher.Choice{{Value: 42, Slug: "index"}}}

	assert.Equal(t, "No home template.", formatHome(home.None(), list))
	assert.Equal(t, "No home template.", formatHome(home.Unresolved(), list))
	assert.Equal(t, switcher.HomeMarker+" index (id 42)", formatHome(home.Of(42), list))
	assert.Contains(t, formatHome(home.Of(9), list), "not in the template list")
}

func TestPrintChoices(t *testing.T) {
	var buf bytes.Buffer
	printChoices(&buf, switcher.ChoiceList{}, 0, true)
	assert.Equal(t, "  (not loaded)\n", buf.String())

	buf.Reset()
	printChoices(&buf, switcher.ChoiceList{Resolved: true}, 0, true)
	assert.Equal(t, "  (none)\n", buf.String())

	buf.Reset()
	printChoices(&buf, switcher.ChoiceList{Resolved: true, Items: []switcher.Choice{
		{Label: "index " + switcher.HomeMarker, Value: 42},
		{Label: "404", Value: 3},
	}}, 3, true)
	assert.Equal(t, "    index "+switcher.HomeMarker+"  (id 42)\n  ✓ 404      (id 3)\n", buf.String())
}

func TestActiveConfigRoundTrip(t *testing.T) {
	a, ok := activeFromConfig(nil)
	assert.False(t, ok)
	assert.Nil(t, a)

	a, ok = activeFromConfig(&config.Active{Kind: "template-part", ID: 11})
	require.True(t, ok)
	assert.Equal(t, switcher.ActiveTemplatePart{ID: 11}, a)
	assert.Equal(t, &config.Active{Kind: "template-part", ID: 11}, activeToConfig(a))

	a, _ = activeFromConfig(&config.Active{Kind: "template", ID: 5})
	assert.Equal(t, switcher.ActiveTemplate{ID: 5}, a)
}

func TestPersistActive(t *testing.T) {
	cfgFile := withFlags(t, "active:\n  kind: template\n  id: 5\n")
	s, err := openSession()
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, persistActive(s, switcher.ActiveTemplatePart{ID: 11}, true))
	cfg, err := config.Load(cfgFile)
	require.NoError(t, err)
	assert.Equal(t, &config.Active{Kind: "template-part", ID: 11}, cfg.Active)
}

func TestNewController_CallbacksSetActive(t *testing.T) {
	ctrl := newController(nil)
	ctrl.SelectTemplatePart(11)
	assert.Equal(t, switcher.ActiveTemplatePart{ID: 11}, ctrl.Active())
	ctrl.SelectTemplate(records.ID(5))
	assert.Equal(t, switcher.ActiveTemplate{ID: 5}, ctrl.Active())
	ctrl.CompleteAddTemplate(99)
	assert.Equal(t, switcher.ActiveTemplate{ID: 99}, ctrl.Active())
}
