package audiovault

import "testing"

func TestMatchesCategory_Strategies(t *testing.T) {
	t.Parallel()

	music := Category{ID: 1, Title: "Music"}

	byID := Audio{ID: 1, CategoryID: 1}
	if !byID.MatchesCategory(music) {
		t.Fatal("id match failed")
	}

	byTitle := Audio{ID: 2, CategoryID: 9, CategoryTitle: " music "}
	if !byTitle.MatchesCategory(music) {
		t.Fatal("case-insensitive title match failed")
	}

	byArray := Audio{ID: 3, CategoryID: 9, Categories: []string{"Podcasts", "MUSIC"}}
	if !byArray.MatchesCategory(music) {
		t.Fatal("legacy categories-array match failed")
	}

	unrelated := Audio{ID: 4, CategoryID: 9, CategoryTitle: "Podcasts"}
	if unrelated.MatchesCategory(music) {
		t.Fatal("unrelated audio matched")
	}

	// A blank-title category must not match everything.
	if (Audio{ID: 5, CategoryTitle: ""}).MatchesCategory(Category{ID: 0, Title: ""}) {
		t.Fatal("empty category matched by blank title")
	}
}

func TestFilterByCategory_PreservesOrder(t *testing.T) {
	t.Parallel()

	music := Category{ID: 1, Title: "Music"}
	audios := []Audio{
		{ID: 1, CategoryID: 1},
		{ID: 2, CategoryID: 2},
		{ID: 3, CategoryTitle: "Music"},
	}

	got := FilterByCategory(audios, music)
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Fatalf("filtered = %#v", got)
	}
}

func TestRelated_ExcludesSelfAndLimits(t *testing.T) {
	t.Parallel()

	current := Audio{ID: 1, CategoryID: 1, CategoryTitle: "Music"}
	audios := []Audio{
		{ID: 1, CategoryID: 1},
		{ID: 2, CategoryID: 1},
		{ID: 3, CategoryID: 1},
		{ID: 4, CategoryID: 2},
		{ID: 5, CategoryID: 1},
	}

	got := Related(audios, current, 2)
	if len(got) != 2 || got[0].ID != 2 || got[1].ID != 3 {
		t.Fatalf("related = %#v", got)
	}
	for _, a := range got {
		if a.ID == current.ID {
			t.Fatal("related contains the record itself")
		}
	}
}
