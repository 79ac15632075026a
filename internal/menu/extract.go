package menu

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/rs/zerolog/log"
)

// Selectors for the menu page layout. Compiled once and shared; cascadia
// matchers are safe for concurrent use.
var (
	sectionSelector  = cascadia.MustCompile(".sec-wrap .c_l-content section")
	categorySelector = cascadia.MustCompile("h3 a")
	itemSelector     = cascadia.MustCompile("ul.item-list li a")
	nameSelector     = cascadia.MustCompile("span.ttl")
)

var lineBreaks = strings.NewReplacer("\r\n", "", "\n", "", "\r", "")

// Section is one category block of the menu page.
type Section struct {
	Label string
	Items []string
}

// RawEntry is an extracted (heading, name) pair before classification.
type RawEntry struct {
	Label string
	Name  string
}

// Extraction is the result of walking one menu document.
type Extraction struct {
	Sections []Section

	// SkippedSections and SkippedItems count nodes dropped because their
	// heading or name node was missing.
	SkippedSections int
	SkippedItems    int
}

// Entries flattens the extraction into (heading, name) pairs in document order.
func (x *Extraction) Entries() []RawEntry {
	var entries []RawEntry
	for _, s := range x.Sections {
		for _, name := range s.Items {
			entries = append(entries, RawEntry{Label: s.Label, Name: name})
		}
	}
	return entries
}

// Extractor walks menu pages.
type Extractor struct {
	// Strict makes a missing heading or dish name abort the extraction with
	// ErrMarkupShape instead of skipping the section or item.
	Strict bool
}

// Extract parses document and returns its sections in document order.
// A document without any matching section yields an empty extraction.
func (e *Extractor) Extract(document string) (*Extraction, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(document))
	if err != nil {
		return nil, fmt.Errorf("failed to parse menu document: %w", err)
	}

	result := &Extraction{}
	var extractErr error
	doc.FindMatcher(sectionSelector).EachWithBreak(func(i int, section *goquery.Selection) bool {
		label, ok := flatText(section, categorySelector)
		if !ok {
			if e.Strict {
				extractErr = fmt.Errorf("%w: section %d has no category heading", ErrMarkupShape, i)
				return false
			}
			log.Warn().Int("section", i).Msg("skipping menu section without category heading")
			result.SkippedSections++
			return true
		}

		s := Section{Label: label}
		section.FindMatcher(itemSelector).EachWithBreak(func(j int, item *goquery.Selection) bool {
			name, ok := flatText(item, nameSelector)
			if !ok {
				if e.Strict {
					extractErr = fmt.Errorf("%w: item %d in section %q has no name", ErrMarkupShape, j, label)
					return false
				}
				log.Warn().Str("section", label).Int("item", j).Msg("skipping menu item without name")
				result.SkippedItems++
				return true
			}
			s.Items = append(s.Items, name)
			return true
		})
		if extractErr != nil {
			return false
		}

		result.Sections = append(result.Sections, s)
		return true
	})
	if extractErr != nil {
		return nil, extractErr
	}

	return result, nil
}

// flatText returns the text of the first node under sel matching m, with all
// line breaks removed. The bool is false when nothing matches.
func flatText(sel *goquery.Selection, m goquery.Matcher) (string, bool) {
	node := sel.FindMatcher(m).First()
	if node.Length() == 0 {
		return "", false
	}
	return strings.TrimSpace(lineBreaks.Replace(node.Text())), true
}
