// Package upload collects a local audio file plus metadata, validates
// it, and encodes it as the multipart form the AudioVault API expects.
package upload

import (
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/resonate-app/resonate/internal/audiovault"
)

// Form is the editable state of the upload workflow.
type Form struct {
	Title         string
	Description   string
	Transcription string
	CategoryID    int
	TagIDs        []int
	FilePath      string
}

// Validation error keys, one per required field.
const (
	ErrKeyTitle    = "title"
	ErrKeyFile     = "file"
	ErrKeyCategory = "category"
)

// Validate returns one message per missing required field. Callers must
// not touch the network while the map is non-empty.
func (f Form) Validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(f.Title) == "" {
		errs[ErrKeyTitle] = "Title is required"
	}
	if strings.TrimSpace(f.FilePath) == "" {
		errs[ErrKeyFile] = "Audio file is required"
	}
	if f.CategoryID == 0 {
		errs[ErrKeyCategory] = "Please select a category"
	}
	return errs
}

// SelectedTags resolves the form's tag ids against the tag list,
// dropping ids that no longer exist.
func (f Form) SelectedTags(tags []audiovault.Tag) []audiovault.Tag {
	return lo.Filter(tags, func(t audiovault.Tag, _ int) bool {
		return lo.Contains(f.TagIDs, t.ID)
	})
}

// Fields encodes the form metadata as multipart fields.
//
// The encoding is deliberately redundant: the category goes out as name
// (Category, CategoryName) and id (CategoryId), tags as names (Tags) and
// ids (TagIds). Server builds have disagreed on which spelling they
// read, and extra fields are ignored.
func (f Form) Fields(categories []audiovault.Category, tags []audiovault.Tag) []audiovault.FormField {
	description := f.Description
	if strings.TrimSpace(description) == "" {
		description = "No description provided"
	}

	fields := []audiovault.FormField{
		{Name: "Title", Value: f.Title},
		{Name: "Description", Value: description},
		{Name: "Transcription", Value: f.Transcription},
	}

	category, found := lo.Find(categories, func(c audiovault.Category) bool {
		return c.ID == f.CategoryID
	})
	if !found {
		category = audiovault.Category{ID: 1, Title: "Music"}
	}
	fields = append(fields,
		audiovault.FormField{Name: "Category", Value: category.Title},
		audiovault.FormField{Name: "CategoryId", Value: strconv.Itoa(category.ID)},
		audiovault.FormField{Name: "CategoryName", Value: category.Title},
	)

	if len(f.TagIDs) > 0 {
		selected := f.SelectedTags(tags)
		names := lo.Map(selected, func(t audiovault.Tag, _ int) string { return t.Name })
		ids := lo.Map(f.TagIDs, func(id int, _ int) string { return strconv.Itoa(id) })
		fields = append(fields,
			audiovault.FormField{Name: "Tags", Value: strings.Join(names, ",")},
			audiovault.FormField{Name: "TagIds", Value: strings.Join(ids, ",")},
		)
	}

	return fields
}

// ToggleTag adds or removes a tag id from the selection.
func (f *Form) ToggleTag(id int) {
	if lo.Contains(f.TagIDs, id) {
		f.TagIDs = lo.Filter(f.TagIDs, func(v int, _ int) bool { return v != id })
		return
	}
	f.TagIDs = append(f.TagIDs, id)
}
