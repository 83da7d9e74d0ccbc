package switcher

import "github.com/ruminaider/template-switcher/internal/records"

// DefaultTemplateSlugs are the templates a block theme can provide, in the
// order the add-template dialog offers them.
var DefaultTemplateSlugs = []string{
	"front-page",
	"home",
	"index",
	"singular",
	"single",
	"page",
	"archive",
	"author",
	"category",
	"taxonomy",
	"date",
	"tag",
	"attachment",
	"search",
	"privacy-policy",
	"404",
}

// MissingTemplateSlugs returns the default slugs not already covered by a
// template whose id is in candidateIDs.
func MissingTemplateSlugs(templates []records.TemplateRecord, candidateIDs []records.ID) []string {
	candidates := make(map[records.ID]bool, len(candidateIDs))
	for _, id := range candidateIDs {
		candidates[id] = true
	}
	existing := make(map[string]bool)
	for _, t := range templates {
		if candidates[t.ID] {
			existing[t.Slug] = true
		}
	}

	var missing []string
	for _, slug := range DefaultTemplateSlugs {
		if !existing[slug] {
			missing = append(missing, slug)
		}
	}
	return missing
}
