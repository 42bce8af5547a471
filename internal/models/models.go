package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// TODO: split into different files when become too big

var (
	ErrTimeRangeInvalid  = errors.New("invalid time range")
	ErrVideoPathEmpty    = errors.New("video path is empty")
	ErrHighlightExists   = errors.New("highlight id already exists")
	ErrHighlightNotFound = errors.New("highlight not found")
)

// TimeRange is a [start, end) interval in seconds.
// Zero-length and inverted ranges are rejected on construction
// and on unmarshalling, never clamped.
type TimeRange struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

func NewTimeRange(start, end float64) (TimeRange, error) {
	r := TimeRange{Start: start, End: end}
	if err := r.validate(); err != nil {
		return TimeRange{}, err
	}
	return r, nil
}

func (r TimeRange) validate() error {
	if r.Start < 0 {
		return fmt.Errorf("%w: start %g < 0", ErrTimeRangeInvalid, r.Start)
	}
	if r.End <= r.Start {
		return fmt.Errorf("%w: end %g <= start %g", ErrTimeRangeInvalid, r.End, r.Start)
	}
	return nil
}

func (r TimeRange) Duration() float64 {
	return r.End - r.Start
}

// decodeStrict unmarshals data rejecting unknown fields. Plain
// json.Unmarshal would drop them silently, bypassing the custom
// unmarshalers' strictness guarantee.
func decodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func (r *TimeRange) UnmarshalJSON(data []byte) error {
	type timeRangeJSON TimeRange

	var tmp timeRangeJSON
	if err := decodeStrict(data, &tmp); err != nil {
		return err
	}
	if err := TimeRange(tmp).validate(); err != nil {
		return err
	}

	*r = TimeRange(tmp)
	return nil
}

// VideoFile references the project source video.
// Metadata fields stay nil until probing is implemented.
type VideoFile struct {
	Path     string   `json:"path"`
	Duration *float64 `json:"duration"`
	FPS      *float64 `json:"fps"`
	Width    *int     `json:"width"`
	Height   *int     `json:"height"`
}

func NewVideoFile(path string) (VideoFile, error) {
	if path == "" {
		return VideoFile{}, ErrVideoPathEmpty
	}
	return VideoFile{Path: path}, nil
}

func (v *VideoFile) UnmarshalJSON(data []byte) error {
	type videoFileJSON VideoFile

	var tmp videoFileJSON
	if err := decodeStrict(data, &tmp); err != nil {
		return err
	}
	if tmp.Path == "" {
		return ErrVideoPathEmpty
	}

	*v = VideoFile(tmp)
	return nil
}

// Highlight is a named time interval inside the project video.
type Highlight struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	TimeRange   TimeRange `json:"time_range"`
	Description *string   `json:"description"`
	Tags        []string  `json:"tags"`
}

func (h Highlight) MarshalJSON() ([]byte, error) {
	type highlightJSON Highlight

	tmp := highlightJSON(h)
	if tmp.Tags == nil {
		tmp.Tags = []string{}
	}

	return json.Marshal(tmp)
}

func (h *Highlight) UnmarshalJSON(data []byte) error {
	type highlightJSON Highlight

	var tmp highlightJSON
	if err := decodeStrict(data, &tmp); err != nil {
		return err
	}
	if tmp.Tags == nil {
		tmp.Tags = []string{}
	}

	*h = Highlight(tmp)
	return nil
}

// HighlightFilter holds search criteria for highlight lookup.
type HighlightFilter struct {
	Name       string
	Tags       []string
	MaxRespLen int
}

// ProjectState is the aggregate root, one JSON document per project.
//
// Highlights keep insertion order. SelectedHighlightID is a plain
// identifier, not a pointer into Highlights; readers re-resolve it
// by scanning, so a stale id degrades to "nothing selected".
type ProjectState struct {
	ProjectName         string         `json:"project_name"`
	VideoFile           *VideoFile     `json:"video_file"`
	Highlights          []Highlight    `json:"highlights"`
	SelectedHighlightID *string        `json:"selected_highlight_id"`
	ExportSettings      map[string]any `json:"export_settings"`
}

func NewProjectState(name string) ProjectState {
	return ProjectState{
		ProjectName:    name,
		Highlights:     []Highlight{},
		ExportSettings: map[string]any{},
	}
}

// SetVideo replaces the current video reference unconditionally.
func (p *ProjectState) SetVideo(v VideoFile) {
	p.VideoFile = &v
}

// AddHighlight appends a highlight preserving insertion order.
func (p *ProjectState) AddHighlight(h Highlight) error {
	if p.highlightIndex(h.ID) != -1 {
		return fmt.Errorf("%w: %q", ErrHighlightExists, h.ID)
	}
	if h.Tags == nil {
		h.Tags = []string{}
	}
	p.Highlights = append(p.Highlights, h)
	return nil
}

// RemoveHighlight removes the highlight with the given id and reports
// whether it was found. Removing the selected highlight clears the
// selection, so it never dangles.
func (p *ProjectState) RemoveHighlight(id string) bool {
	i := p.highlightIndex(id)
	if i == -1 {
		return false
	}
	p.Highlights = append(p.Highlights[:i], p.Highlights[i+1:]...)
	if p.SelectedHighlightID != nil && *p.SelectedHighlightID == id {
		p.SelectedHighlightID = nil
	}
	return true
}

func (p *ProjectState) SelectHighlight(id string) error {
	if p.highlightIndex(id) == -1 {
		return fmt.Errorf("%w: %q", ErrHighlightNotFound, id)
	}
	p.SelectedHighlightID = &id
	return nil
}

// SelectedHighlight returns the selected highlight or nil when
// nothing is selected or the stored id no longer exists.
func (p *ProjectState) SelectedHighlight() *Highlight {
	if p.SelectedHighlightID == nil {
		return nil
	}
	i := p.highlightIndex(*p.SelectedHighlightID)
	if i == -1 {
		return nil
	}
	return &p.Highlights[i]
}

// Highlight returns the highlight with the given id.
func (p *ProjectState) Highlight(id string) (Highlight, error) {
	i := p.highlightIndex(id)
	if i == -1 {
		return Highlight{}, fmt.Errorf("%w: %q", ErrHighlightNotFound, id)
	}
	return p.Highlights[i], nil
}

// UpdateHighlightRange replaces the time range of the highlight
// with the given id.
func (p *ProjectState) UpdateHighlightRange(id string, r TimeRange) error {
	i := p.highlightIndex(id)
	if i == -1 {
		return fmt.Errorf("%w: %q", ErrHighlightNotFound, id)
	}
	p.Highlights[i].TimeRange = r
	return nil
}

// NudgeHighlight shifts the highlight range by offset seconds.
// The new start is clamped at zero, the new end is not; a collapsed
// or inverted result fails with ErrTimeRangeInvalid and leaves the
// highlight untouched.
func (p *ProjectState) NudgeHighlight(id string, offset float64) error {
	i := p.highlightIndex(id)
	if i == -1 {
		return fmt.Errorf("%w: %q", ErrHighlightNotFound, id)
	}

	old := p.Highlights[i].TimeRange
	r, err := NewTimeRange(max(0, old.Start+offset), old.End+offset)
	if err != nil {
		return err
	}

	p.Highlights[i].TimeRange = r
	return nil
}

func (p *ProjectState) highlightIndex(id string) int {
	for i, h := range p.Highlights {
		if h.ID == id {
			return i
		}
	}
	return -1
}

// Validate re-checks every aggregate invariant. It runs after
// deserialization so a tampered document fails the whole load.
func (p *ProjectState) Validate() error {
	if p.VideoFile != nil && p.VideoFile.Path == "" {
		return ErrVideoPathEmpty
	}

	seen := make(map[string]struct{}, len(p.Highlights))
	for _, h := range p.Highlights {
		if _, ok := seen[h.ID]; ok {
			return fmt.Errorf("%w: %q", ErrHighlightExists, h.ID)
		}
		seen[h.ID] = struct{}{}

		if err := h.TimeRange.validate(); err != nil {
			return fmt.Errorf("highlight %q: %w", h.ID, err)
		}
	}

	if p.SelectedHighlightID != nil {
		if _, ok := seen[*p.SelectedHighlightID]; !ok {
			return fmt.Errorf("%w: selected %q", ErrHighlightNotFound, *p.SelectedHighlightID)
		}
	}

	return nil
}

func (p ProjectState) MarshalJSON() ([]byte, error) {
	type projectStateJSON ProjectState

	tmp := projectStateJSON(p)
	if tmp.Highlights == nil {
		tmp.Highlights = []Highlight{}
	}
	if tmp.ExportSettings == nil {
		tmp.ExportSettings = map[string]any{}
	}

	return json.Marshal(tmp)
}

func (p *ProjectState) UnmarshalJSON(data []byte) error {
	type projectStateJSON ProjectState

	var tmp projectStateJSON
	if err := decodeStrict(data, &tmp); err != nil {
		return err
	}
	if tmp.Highlights == nil {
		tmp.Highlights = []Highlight{}
	}
	if tmp.ExportSettings == nil {
		tmp.ExportSettings = map[string]any{}
	}

	state := ProjectState(tmp)
	if err := state.Validate(); err != nil {
		return err
	}

	*p = state
	return nil
}
