package knowledge

import (
	"fmt"
	"strconv"
	"strings"

	"cafe-assistant-be/pkg/catalog"
)

// BuildCorpus derives the searchable fact corpus from one catalog
// snapshot. The build is deterministic: the same snapshot always yields
// byte-identical entries, so rebuilds are safe to diff and swap.
func BuildCorpus(snap catalog.Snapshot) *Corpus {
	entries := make([]Entry, 0, snap.Len()*5+16)

	entries = append(entries, staticEntries()...)

	for _, item := range snap.All() {
		entries = append(entries, itemEntries(item)...)
	}

	return NewCorpus(entries)
}

// itemEntries generates the canonical fact entry plus templated question
// variants, all pointing at the same response text.
func itemEntries(item catalog.Item) []Entry {
	response := itemResponse(item)
	name := strings.ToLower(strings.TrimSpace(item.Name))

	canonical := Entry{
		Tags:     canonicalTags(item),
		Response: response,
	}

	variants := []Entry{
		{Tags: []string{"what is " + name}, Response: response},
		{Tags: []string{name + " price"}, Response: response},
		{Tags: []string{"how much is " + name}, Response: response},
		{Tags: []string{"tell me about " + name}, Response: response},
	}

	return append([]Entry{canonical}, variants...)
}

// canonicalTags collects the item name, its category words of three or
// more characters, and the declared tag list, lowercased, deduplicated,
// in first-seen order.
func canonicalTags(item catalog.Item) []string {
	seen := make(map[string]bool)
	tags := make([]string, 0, len(item.Tags)+4)

	add := func(tag string) {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			return
		}
		seen[tag] = true
		tags = append(tags, tag)
	}

	add(item.Name)
	for _, word := range strings.Fields(item.Category) {
		if len(word) >= 3 {
			add(word)
		}
	}
	for _, t := range item.Tags {
		add(t)
	}

	return tags
}

func itemResponse(item catalog.Item) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s is part of our %s selection, priced at %s.",
		item.Name, item.Category, FormatPrice(item.Price)))

	if item.Description != "" {
		sb.WriteString(" ")
		sb.WriteString(item.Description)
		if !strings.HasSuffix(item.Description, ".") {
			sb.WriteString(".")
		}
	}

	switch {
	case item.Artist != "":
		sb.WriteString(fmt.Sprintf(" Created by %s.", item.Artist))
	case item.SeatsAvailable > 0:
		sb.WriteString(fmt.Sprintf(" %d seats are currently available.", item.SeatsAvailable))
	case item.CaffeineLevel != "":
		sb.WriteString(fmt.Sprintf(" Caffeine level: %s.", item.CaffeineLevel))
	}

	return sb.String()
}

// FormatPrice renders whole prices without a decimal tail (270, not 270.00).
func FormatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}

// staticEntries covers business facts the catalog does not carry. These
// answer the storefront's recurring non-menu questions directly instead
// of burning a provider call.
func staticEntries() []Entry {
	return []Entry{
		{
			Tags:     []string{"franchise", "franchise cost", "franchise fee", "open a franchise"},
			Response: "Our franchise program starts at an initial fee of 500000, which covers setup, training, and the first year of supply-chain access. Reach out through the contact page for the full brochure.",
		},
		{
			Tags:     []string{"opening hours", "timing", "when are you open", "hours"},
			Response: "We are open every day from 8 AM to 10 PM, including holidays.",
		},
		{
			Tags:     []string{"location", "where are you", "address"},
			Response: "You can find us through the contact page, which lists every outlet with directions.",
		},
		{
			Tags:     []string{"wifi", "wifi password", "internet"},
			Response: "Free Wi-Fi is available at every table. Ask any barista for today's password.",
		},
	}
}
