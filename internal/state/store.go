// Package state holds the client-side application state: categories,
// tags, the audio list, and the currently open record, together with
// per-slice loading and error signals.
//
// Every fetch follows the same protocol: mark the slice loading, call
// the API, normalize, commit. On failure the slice is populated with
// fixed fallback data so the UI never renders empty purely because of a
// transient network problem — which also means a recorded error does NOT
// imply the displayed data is empty, only that it may be synthetic.
//
// Loading and error state is tracked per slice rather than as a single
// shared pair, and each fetch carries a sequence number: a completion is
// discarded when a newer fetch for the same slice has started or when
// its context was cancelled. Overlapping fetches therefore cannot
// clobber each other's terminal state, and navigating away aborts
// in-flight work cleanly.
package state

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/resonate-app/resonate/internal/audiovault"
)

// Slice identifies one independently loaded piece of store state.
type Slice int

const (
	SliceCategories Slice = iota
	SliceTags
	SliceAudios
	SliceCurrent
	SliceUpload
	sliceCount
)

// Status is the externally visible loading/error state of one slice.
type Status struct {
	Loading bool
	Err     string
}

type sliceState struct {
	loading bool
	err     string
	seq     uint64
}

// Store is the application state container. It is constructed per
// application (or per test) and handed to the views explicitly; there is
// no package-level instance.
type Store struct {
	mu     sync.RWMutex
	client audiovault.Fetcher
	log    zerolog.Logger

	categories []audiovault.Category
	tags       []audiovault.Tag
	audios     []audiovault.Audio
	current    *audiovault.Audio
	slices     [sliceCount]sliceState
}

// New builds a Store backed by the given API client.
func New(client audiovault.Fetcher, log zerolog.Logger) *Store {
	return &Store{client: client, log: log}
}

// Snapshot is a copy of the store state at one point in time.
type Snapshot struct {
	Categories []audiovault.Category
	Tags       []audiovault.Tag
	Audios     []audiovault.Audio
	Current    *audiovault.Audio
	Statuses   [sliceCount]Status
}

// Status returns the loading/error state of the given slice.
func (s Snapshot) Status(slice Slice) Status {
	if slice < 0 || slice >= sliceCount {
		return Status{}
	}
	return s.Statuses[slice]
}

// Loading reports whether any slice is currently loading.
func (s Snapshot) Loading() bool {
	return lo.ContainsBy(s.Statuses[:], func(st Status) bool { return st.Loading })
}

// Snapshot returns a defensive copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Categories: append([]audiovault.Category(nil), s.categories...),
		Tags:       append([]audiovault.Tag(nil), s.tags...),
		Audios:     append([]audiovault.Audio(nil), s.audios...),
	}
	if s.current != nil {
		current := *s.current
		snap.Current = &current
	}
	for i, st := range s.slices {
		snap.Statuses[i] = Status{Loading: st.loading, Err: st.err}
	}
	return snap
}

// ResetError clears the recorded error of a slice.
func (s *Store) ResetError(slice Slice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if slice >= 0 && slice < sliceCount {
		s.slices[slice].err = ""
	}
}

// CategoryName resolves a category id against the fetched category list.
// Unknown ids map to "other", matching the server's catch-all bucket.
func (s *Store) CategoryName(id int) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.categories {
		if c.ID == id {
			return c.Title
		}
	}
	return "other"
}

// begin marks the slice loading and returns the fetch sequence number.
func (s *Store) begin(slice Slice) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := &s.slices[slice]
	st.seq++
	st.loading = true
	st.err = ""
	return st.seq
}

// commit applies fn under the lock unless the fetch is stale or its
// context has been cancelled. It reports whether the commit happened.
func (s *Store) commit(ctx context.Context, slice Slice, seq uint64, fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := &s.slices[slice]
	if st.seq != seq {
		return false
	}
	if ctx.Err() != nil {
		// The requester is gone; leave the slice as a newer fetch or the
		// previous commit left it.
		st.loading = false
		return false
	}
	fn()
	st.loading = false
	return true
}

// FetchCategories loads the category list, substituting fallback data on
// failure.
func (s *Store) FetchCategories(ctx context.Context) {
	seq := s.begin(SliceCategories)
	categories, err := s.client.ListCategories(ctx)
	s.commit(ctx, SliceCategories, seq, func() {
		if err != nil {
			s.log.Error().Err(err).Msg("fetch categories failed")
			s.slices[SliceCategories].err = "Failed to fetch categories"
			s.categories = fallbackCategories()
			return
		}
		s.categories = categories
	})
}

// FetchTags loads the tag list. An empty tag list is treated the same as
// a failed fetch; the filter UI is useless without tags, so fallback
// data applies.
func (s *Store) FetchTags(ctx context.Context) {
	seq := s.begin(SliceTags)
	tags, err := s.client.ListTags(ctx)
	s.commit(ctx, SliceTags, seq, func() {
		if err != nil || len(tags) == 0 {
			if err != nil {
				s.log.Error().Err(err).Msg("fetch tags failed")
			} else {
				s.log.Warn().Msg("tags endpoint returned an empty list")
			}
			s.slices[SliceTags].err = "Failed to fetch tags"
			s.tags = fallbackTags()
			return
		}
		s.tags = tags
	})
}

// FetchAudios loads the audio list. A nil params fetches the unfiltered
// list; otherwise the search is delegated to the server, with the
// category id resolved to a name against the fetched category list. No
// client-side re-filtering is applied on top of the response.
func (s *Store) FetchAudios(ctx context.Context, params *audiovault.SearchParams) {
	seq := s.begin(SliceAudios)

	var audios []audiovault.Audio
	var err error
	if params == nil || params.IsZero() {
		audios, err = s.client.ListAudio(ctx)
	} else {
		query := audiovault.SearchQuery{Text: params.Title, TagIDs: params.TagIDs}
		if params.CategoryID > 0 {
			query.Category = s.CategoryName(params.CategoryID)
		}
		audios, err = s.client.SearchAudio(ctx, query)
	}

	s.commit(ctx, SliceAudios, seq, func() {
		if err != nil {
			s.log.Error().Err(err).Msg("fetch audios failed")
			s.slices[SliceAudios].err = "Failed to fetch audios"
			s.audios = fallbackAudios()
			return
		}
		s.audios = lo.Map(audios, func(a audiovault.Audio, _ int) audiovault.Audio {
			return a.Normalized()
		})
	})
}

// FetchAudio loads a single record into the current slot.
func (s *Store) FetchAudio(ctx context.Context, id int) {
	seq := s.begin(SliceCurrent)
	audio, err := s.client.GetAudio(ctx, id)
	s.commit(ctx, SliceCurrent, seq, func() {
		if err != nil {
			s.log.Error().Err(err).Int("id", id).Msg("fetch audio failed")
			s.slices[SliceCurrent].err = "Failed to fetch audio"
			s.current = nil
			return
		}
		normalized := audio.Normalized()
		s.current = &normalized
	})
}

// UploadOutcome is the discriminated result of an upload attempt.
type UploadOutcome struct {
	Success bool
	AudioID int
	Error   string
}

// Upload submits a new record. It never returns a Go error: failures are
// reported in the outcome, and — unlike fetches — the real underlying
// message is surfaced, since silently degrading a user-initiated action
// would hide that it failed.
func (s *Store) Upload(ctx context.Context, payload audiovault.UploadPayload) UploadOutcome {
	seq := s.begin(SliceUpload)
	result, err := s.client.UploadAudio(ctx, payload)

	outcome := UploadOutcome{}
	s.commit(ctx, SliceUpload, seq, func() {
		if err != nil {
			s.log.Error().Err(err).Msg("upload failed")
			outcome.Error = err.Error()
			s.slices[SliceUpload].err = "Failed to upload audio"
			return
		}
		if !result.Success || result.RecordID() == 0 {
			s.log.Error().Msg("upload rejected by server")
			outcome.Error = "Failed to create audio record"
			s.slices[SliceUpload].err = "Failed to upload audio"
			return
		}
		outcome.Success = true
		outcome.AudioID = result.RecordID()
	})
	return outcome
}
