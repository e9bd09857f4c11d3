package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/fluentctl/internal/models"
)

var _ list.Item = taxonomyItem{}

// taxonomyItem wraps [models.Taxonomy] to implement [list.Item].
type taxonomyItem struct {
	taxonomy models.Taxonomy
}

func (i taxonomyItem) FilterValue() string { return i.taxonomy.Title }
func (i taxonomyItem) Title() string       { return i.taxonomy.Title }
func (i taxonomyItem) Description() string {
	desc := fmt.Sprintf("#%d • %s", i.taxonomy.ID, i.taxonomy.Slug)
	if i.taxonomy.CreatedAt != "" {
		desc = fmt.Sprintf("%s • created %s", desc, i.taxonomy.CreatedAt)
	}
	return desc
}

func taxonomyItems(items []models.Taxonomy) []list.Item {
	out := make([]list.Item, len(items))
	for i, t := range items {
		out[i] = taxonomyItem{taxonomy: t}
	}
	return out
}
