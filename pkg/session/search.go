package session

import (
	"sort"
	"strings"

	"github.com/aretw0/inkpad/pkg/core"
	"github.com/aretw0/inkpad/pkg/notes"
)

// TagCount is how many notes carry a tag.
type TagCount struct {
	Tag   string
	Count int
}

// AddTag tags a note.
func (c *Controller) AddTag(id, tag string) error {
	return c.repo.AddTag(id, tag)
}

// RemoveTag untags a note.
func (c *Controller) RemoveTag(id, tag string) error {
	return c.repo.RemoveTag(id, tag)
}

// TagCounts lists every tag in use, most used first.
func (c *Controller) TagCounts() []TagCount {
	counts := make(map[string]int)
	for _, n := range c.repo.List(notes.OrderInsertion) {
		for _, t := range n.Tags {
			counts[t]++
		}
	}

	out := make([]TagCount, 0, len(counts))
	for tag, n := range counts {
		out = append(out, TagCount{Tag: tag, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}

// Search returns the notes matching every term of query. Terms match the
// name, content or tags case-insensitively; a "tag:" or "#" prefix restricts
// a term to tags, matched exactly. An empty query matches everything.
func (c *Controller) Search(query string, order notes.Order) []core.Note {
	terms := strings.Fields(strings.ToLower(query))
	all := c.repo.List(order)
	if len(terms) == 0 {
		return all
	}

	out := make([]core.Note, 0, len(all))
	for _, n := range all {
		if matchesAll(n, terms) {
			out = append(out, n)
		}
	}
	return out
}

// RecentNotes returns up to limit notes, newest first. It is empty when the
// user turned recent notes off.
func (c *Controller) RecentNotes(limit int) []core.Note {
	if !c.Settings().Editor.ShowRecentNotes || limit <= 0 {
		return nil
	}
	list := c.repo.List(notes.OrderNewest)
	if len(list) > limit {
		list = list[:limit]
	}
	return list
}

func matchesAll(n core.Note, terms []string) bool {
	name := strings.ToLower(n.Name)
	content := strings.ToLower(n.Content)

	for _, term := range terms {
		if tag, ok := tagTerm(term); ok {
			if !hasTagFold(n, tag) {
				return false
			}
			continue
		}
		if strings.Contains(name, term) || strings.Contains(content, term) {
			continue
		}
		if !tagContains(n, term) {
			return false
		}
	}
	return true
}

func tagTerm(term string) (string, bool) {
	switch {
	case strings.HasPrefix(term, "tag:") && len(term) > len("tag:"):
		return term[len("tag:"):], true
	case strings.HasPrefix(term, "#") && len(term) > 1:
		return term[1:], true
	}
	return "", false
}

func hasTagFold(n core.Note, tag string) bool {
	for _, t := range n.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

func tagContains(n core.Note, term string) bool {
	for _, t := range n.Tags {
		if strings.Contains(strings.ToLower(t), term) {
			return true
		}
	}
	return false
}
