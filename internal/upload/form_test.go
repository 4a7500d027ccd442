package upload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resonate-app/resonate/internal/audiovault"
)

func TestValidate_ReportsEachMissingField(t *testing.T) {
	t.Parallel()

	errs := Form{}.Validate()
	assert.Contains(t, errs, ErrKeyTitle)
	assert.Contains(t, errs, ErrKeyFile)
	assert.Contains(t, errs, ErrKeyCategory)

	errs = Form{Title: "x", FilePath: "/tmp/x.mp3", CategoryID: 1}.Validate()
	assert.Empty(t, errs)

	// Whitespace-only values do not pass.
	errs = Form{Title: "   ", FilePath: "\t", CategoryID: 1}.Validate()
	assert.Contains(t, errs, ErrKeyTitle)
	assert.Contains(t, errs, ErrKeyFile)
}

func fieldMap(fields []audiovault.FormField) map[string]string {
	out := map[string]string{}
	for _, f := range fields {
		out[f.Name] = f.Value
	}
	return out
}

func TestFields_EncodesRedundantCategoryAndTags(t *testing.T) {
	t.Parallel()

	categories := []audiovault.Category{{ID: 2, Title: "Podcasts"}}
	tags := []audiovault.Tag{{ID: 3, Name: "Rock"}, {ID: 5, Name: "Jazz"}}

	form := Form{
		Title:      "Morning Show",
		CategoryID: 2,
		TagIDs:     []int{3, 5},
	}

	got := fieldMap(form.Fields(categories, tags))
	assert.Equal(t, "Morning Show", got["Title"])
	assert.Equal(t, "Podcasts", got["Category"])
	assert.Equal(t, "2", got["CategoryId"])
	assert.Equal(t, "Podcasts", got["CategoryName"])
	assert.Equal(t, "Rock,Jazz", got["Tags"])
	assert.Equal(t, "3,5", got["TagIds"])
}

func TestFields_DefaultsDescriptionAndCategory(t *testing.T) {
	t.Parallel()

	got := fieldMap(Form{Title: "x"}.Fields(nil, nil))
	assert.Equal(t, "No description provided", got["Description"])
	assert.Equal(t, "Music", got["Category"])
	assert.Equal(t, "1", got["CategoryId"])
	_, hasTags := got["Tags"]
	assert.False(t, hasTags, "empty selection must not emit tag fields")
}

func TestSelectedTags_DropsStaleIDs(t *testing.T) {
	t.Parallel()

	tags := []audiovault.Tag{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}
	form := Form{TagIDs: []int{2, 99}}

	selected := form.SelectedTags(tags)
	require.Len(t, selected, 1)
	assert.Equal(t, "B", selected[0].Name)
}

func TestToggleTag(t *testing.T) {
	t.Parallel()

	var form Form
	form.ToggleTag(3)
	form.ToggleTag(5)
	assert.Equal(t, []int{3, 5}, form.TagIDs)

	form.ToggleTag(3)
	assert.Equal(t, []int{5}, form.TagIDs)
}
