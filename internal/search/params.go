// Package search round-trips filter state through the client-side query
// surface: q (title text), category (numeric id), tags (comma-joined
// numeric ids). The same encoded form is what the UI shows as the
// current "route", so parsing an encoded value must reproduce the
// structured one.
package search

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/resonate-app/resonate/internal/audiovault"
)

// Parse decodes query values into structured search params. Malformed
// numeric ids are dropped rather than failing the whole parse.
func Parse(values url.Values) audiovault.SearchParams {
	params := audiovault.SearchParams{
		Title: values.Get("q"),
	}
	if raw := values.Get("category"); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil && id > 0 {
			params.CategoryID = id
		}
	}
	if raw := values.Get("tags"); raw != "" {
		ids := lo.FilterMap(strings.Split(raw, ","), func(part string, _ int) (int, bool) {
			id, err := strconv.Atoi(strings.TrimSpace(part))
			return id, err == nil && id > 0
		})
		params.TagIDs = lo.Uniq(ids)
	}
	return params
}

// Values encodes search params back into query values. Unset fields are
// omitted, never defaulted.
func Values(params audiovault.SearchParams) url.Values {
	values := url.Values{}
	if params.Title != "" {
		values.Set("q", params.Title)
	}
	if params.CategoryID > 0 {
		values.Set("category", strconv.Itoa(params.CategoryID))
	}
	if len(params.TagIDs) > 0 {
		joined := strings.Join(lo.Map(params.TagIDs, func(id int, _ int) string {
			return strconv.Itoa(id)
		}), ",")
		values.Set("tags", joined)
	}
	return values
}

// Encode renders the params as an encoded query string.
func Encode(params audiovault.SearchParams) string {
	return Values(params).Encode()
}

// ParseQuery decodes an encoded query string; invalid input parses as
// empty params.
func ParseQuery(query string) audiovault.SearchParams {
	values, err := url.ParseQuery(query)
	if err != nil {
		return audiovault.SearchParams{}
	}
	return Parse(values)
}

// MaxRecent caps the remembered search history.
const MaxRecent = 5

// Remember prepends term to the history, deduplicating and keeping the
// most recent MaxRecent entries.
func Remember(recent []string, term string) []string {
	term = strings.TrimSpace(term)
	if term == "" {
		return recent
	}
	out := append([]string{term}, lo.Filter(recent, func(s string, _ int) bool {
		return s != term
	})...)
	if len(out) > MaxRecent {
		out = out[:MaxRecent]
	}
	return out
}
