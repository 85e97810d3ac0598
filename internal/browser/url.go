package browser

import (
	"strings"

	"tabbatch/internal/config"
)

// URLTemplate produces one URL per identifier by substituting the placeholder.
type URLTemplate string

// Fill returns the URL for a single identifier.
func (t URLTemplate) Fill(id string) string {
	return strings.ReplaceAll(string(t), config.Placeholder, id)
}

// Build returns the URLs for ids in order.
func (t URLTemplate) Build(ids []string) []string {
	urls := make([]string, 0, len(ids))
	for _, id := range ids {
		urls = append(urls, t.Fill(id))
	}
	return urls
}
