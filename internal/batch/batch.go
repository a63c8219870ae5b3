// Package batch tracks the input videos of one run as they move through the
// extract, transcribe, and mux stages.
//
// Items keep input order, and each carries its source path and stem from the
// first stage to the last so artifacts never swap between files.
package batch

import (
	"fmt"
	"path/filepath"
	"strings"

	"autosub/internal/fileutil"
	"autosub/internal/services"
)

// Stage names a pipeline stage.
type Stage string

const (
	StageExtract    Stage = "extract"
	StageTranscribe Stage = "transcribe"
	StageMux        Stage = "mux"
)

// Item is one input video and the artifacts produced for it so far.
type Item struct {
	Source       string
	Stem         string
	AudioPath    string
	SubtitlePath string
	OutputPath   string
	CueCount     int

	Err         error
	FailedStage Stage
}

// Failed reports whether a stage has marked the item as failed.
func (i *Item) Failed() bool {
	return i.Err != nil
}

// Fail records the first failure for the item.
func (i *Item) Fail(stage Stage, err error) {
	if i.Err != nil || err == nil {
		return
	}
	i.Err = err
	i.FailedStage = stage
}

// Batch is the ordered set of items in a run.
type Batch struct {
	Items []*Item
}

// New builds a batch from the given paths. It rejects an empty list,
// repeated paths, and distinct paths that share a stem, since their
// artifacts would overwrite each other.
func New(paths []string) (*Batch, error) {
	if len(paths) == 0 {
		return nil, services.Wrap(services.ErrValidation, "batch", "new", "at least one video is required", nil)
	}
	seenPath := make(map[string]struct{}, len(paths))
	seenStem := make(map[string]string, len(paths))
	items := make([]*Item, 0, len(paths))
	for _, path := range paths {
		if strings.TrimSpace(path) == "" {
			return nil, services.Wrap(services.ErrValidation, "batch", "new", "empty video path", nil)
		}
		key := filepath.Clean(path)
		if _, ok := seenPath[key]; ok {
			return nil, services.Wrap(services.ErrValidation, "batch", "new", fmt.Sprintf("video %q given more than once", path), nil)
		}
		seenPath[key] = struct{}{}
		stem := fileutil.Stem(path)
		if prev, ok := seenStem[stem]; ok {
			return nil, services.Wrap(services.ErrValidation, "batch", "new",
				fmt.Sprintf("videos %q and %q share the name %q; their outputs would collide", prev, path, stem), nil)
		}
		seenStem[stem] = path
		items = append(items, &Item{Source: path, Stem: stem})
	}
	return &Batch{Items: items}, nil
}

// Pending returns the items that have not failed, in input order.
func (b *Batch) Pending() []*Item {
	pending := make([]*Item, 0, len(b.Items))
	for _, item := range b.Items {
		if !item.Failed() {
			pending = append(pending, item)
		}
	}
	return pending
}

// Failures returns the items that failed, in input order.
func (b *Batch) Failures() []*Item {
	var failed []*Item
	for _, item := range b.Items {
		if item.Failed() {
			failed = append(failed, item)
		}
	}
	return failed
}

// AudioMap maps each source path to its extracted audio, for items that
// reached that point.
func (b *Batch) AudioMap() map[string]string {
	return b.view(func(i *Item) string { return i.AudioPath })
}

// SubtitleMap maps each source path to its SRT file.
func (b *Batch) SubtitleMap() map[string]string {
	return b.view(func(i *Item) string { return i.SubtitlePath })
}

// OutputMap maps each source path to its subtitled video.
func (b *Batch) OutputMap() map[string]string {
	return b.view(func(i *Item) string { return i.OutputPath })
}

func (b *Batch) view(field func(*Item) string) map[string]string {
	out := make(map[string]string, len(b.Items))
	for _, item := range b.Items {
		if item.Failed() {
			continue
		}
		if v := field(item); v != "" {
			out[item.Source] = v
		}
	}
	return out
}
