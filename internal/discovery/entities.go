// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

package discovery

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// Cheap named entity extraction. No model is involved, so this runs on every
// candidate of a semantic scan without noticeable cost.

var (
	emailRegex   = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	urlRegex     = regexp.MustCompile(`(?i)\bhttps?://[^\s]+|\bwww\.[^\s]+`)
	mentionRegex = regexp.MustCompile(`(?:^|\s)@([A-Za-z0-9_]{2,})`)
	hashtagRegex = regexp.MustCompile(`(?:^|\s)#([A-Za-z][A-Za-z0-9_]+)`)
)

// ExtractEntities returns the normalized named entities found in text:
// email addresses, URLs, @mentions, #hashtags and capitalized words that do
// not start a sentence. The result is sorted and free of duplicates.
func ExtractEntities(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	seen := make(map[string]struct{})
	add := func(e string) {
		e = strings.ToLower(strings.TrimRight(e, ".,;:!?)\"'"))
		if e != "" {
			seen[e] = struct{}{}
		}
	}

	for _, m := range emailRegex.FindAllString(text, -1) {
		add(m)
	}
	for _, m := range urlRegex.FindAllString(text, -1) {
		add(m)
	}
	for _, m := range mentionRegex.FindAllStringSubmatch(text, -1) {
		add("@" + m[1])
	}
	for _, m := range hashtagRegex.FindAllStringSubmatch(text, -1) {
		add("#" + m[1])
	}
	for _, name := range properNouns(text) {
		add(name)
	}

	entities := make([]string, 0, len(seen))
	for e := range seen {
		entities = append(entities, e)
	}
	sort.Strings(entities)
	return entities
}

// SharedEntities returns the entities present in both texts, sorted.
func SharedEntities(a, b string) []string {
	return intersectEntities(ExtractEntities(a), ExtractEntities(b))
}

// intersectEntities returns the entries of left also present in right,
// keeping the order of left.
func intersectEntities(left, right []string) []string {
	if len(left) == 0 || len(right) == 0 {
		return nil
	}

	set := make(map[string]struct{}, len(right))
	for _, e := range right {
		set[e] = struct{}{}
	}

	var shared []string
	for _, e := range left {
		if _, ok := set[e]; ok {
			shared = append(shared, e)
		}
	}
	return shared
}

// properNouns returns capitalized words that are not the first word of a
// sentence. Words shorter than two letters are ignored.
func properNouns(text string) []string {
	var nouns []string
	sentenceStart := true

	for _, word := range strings.Fields(text) {
		trimmed := strings.TrimFunc(word, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})

		if !sentenceStart && isCapitalized(trimmed) {
			nouns = append(nouns, trimmed)
		}

		sentenceStart = strings.ContainsAny(word[len(word)-1:], ".!?")
	}
	return nouns
}

func isCapitalized(word string) bool {
	runes := []rune(word)
	if len(runes) < 2 || !unicode.IsUpper(runes[0]) {
		return false
	}
	for _, r := range runes[1:] {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
