package control

import (
	"slices"
	"strings"

	domain "github.com/donaldgifford/group-post-monitor/pkg/types"
)

// SplitList splits a comma-separated list, trimming entries and dropping
// empty ones.
func SplitList(s string) []string {
	return Clean(strings.Split(s, ","))
}

// Clean trims every entry and drops empty ones. It returns nil when nothing
// remains.
func Clean(items []string) []string {
	var out []string
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return out
}

// Normalize returns a copy of s with defaults applied and list fields
// cleaned.
func Normalize(s domain.Settings) domain.Settings {
	s.Groups = Clean(slices.Clone(s.Groups))
	s.Criteria.Keywords = Clean(slices.Clone(s.Criteria.Keywords))
	s.EmailSender = strings.TrimSpace(s.EmailSender)
	s.EmailReceiver = strings.TrimSpace(s.EmailReceiver)
	s.SMTPServer = strings.TrimSpace(s.SMTPServer)
	s.Schedule = strings.TrimSpace(s.Schedule)
	s.ApplyDefaults()
	return s
}
