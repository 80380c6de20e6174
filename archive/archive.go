// Package archive is the public facade over an opened PSARC container: it
// exposes listing and extraction, and layers two conversions on top — SNG
// to Rocksmith toolkit XML, and an injectable audio conversion hook —
// aggregating per-entry failures rather than aborting the run.
package archive

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mogaika/open-psarc/container"
	"github.com/mogaika/open-psarc/manifest"
	"github.com/mogaika/open-psarc/sng"
	"github.com/mogaika/open-psarc/statuslog"
	"github.com/mogaika/open-psarc/xmlemit"
	"github.com/pkg/errors"
)

// BnkEntry is one Wwise sound object extracted from a .bnk bank: either
// embedded audio data, or a reference to a separately streamed .wem entry
// carrying the same numeric ID.
type BnkEntry struct {
	ID       int
	Streamed bool
	Data     []byte
}

// AudioConverter is the collaborator ConvertAudio delegates Wwise audio
// extraction and transcoding to; the core module has no opinion on the
// .bnk container layout or the Vorbis conversion itself, only on locating
// and naming the entries that feed it.
type AudioConverter interface {
	BnkExtract(data []byte) ([]BnkEntry, error)
	Wem2Ogg(data []byte) ([]byte, error)
}

// Options configures an Archive beyond the bare file path.
type Options struct {
	// StatusCapacity sizes the ring buffer backing Log. Zero selects a
	// small default.
	StatusCapacity int

	// ManifestMatch overrides ConvertSng's default manifest-candidate
	// test (an entry name containing "songs_dlc_" and ending in
	// ".json"). Nil selects the default.
	ManifestMatch func(name string) bool
}

func defaultManifestMatch(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "songs_dlc_") && strings.HasSuffix(lower, ".json")
}

// Archive wraps an opened container.Reader with the higher-level SNG and
// audio conversion operations.
type Archive struct {
	r             *container.Reader
	path          string
	Log           *statuslog.Log
	manifestMatch func(name string) bool
}

// Open parses path's header, TOC, and names manifest eagerly.
func Open(path string, opts Options) (*Archive, error) {
	r, err := container.Open(path)
	if err != nil {
		return nil, err
	}
	cap := opts.StatusCapacity
	if cap <= 0 {
		cap = 64
	}
	match := opts.ManifestMatch
	if match == nil {
		match = defaultManifestMatch
	}
	return &Archive{r: r, path: path, Log: statuslog.New(cap), manifestMatch: match}, nil
}

// Close is idempotent; a second call on an already-closed Archive is a
// no-op.
func (a *Archive) Close() error {
	if a.r == nil {
		return nil
	}
	err := a.r.Close()
	a.r = nil
	return err
}

func (a *Archive) FileCount() int          { return a.r.FileCount() }
func (a *Archive) FileList() []string      { return a.r.FileList() }
func (a *Archive) FileExists(name string) bool { return a.r.FileExists(name) }

// Entry resolves by name; ok is false if no entry carries that name.
func (a *Archive) Entry(name string) (container.Entry, bool) {
	return a.r.EntryByName(name)
}

// EntryAt resolves by TOC index.
func (a *Archive) EntryAt(index int) (container.Entry, bool) {
	return a.r.EntryByIndex(index)
}

// ExtractFile returns one entry's bytes, SNG-wrapper-stripped when
// applicable.
func (a *Archive) ExtractFile(name string) ([]byte, error) {
	return a.r.ExtractByName(name)
}

// ExtractFileTo extracts one entry and writes it to outPath.
func (a *Archive) ExtractFileTo(name, outPath string) error {
	return a.r.ExtractFileTo(name, outPath)
}

// ExtractAll writes every entry under dir in TOC order, aggregating
// per-entry failures into a single *container.PartialExtraction rather
// than aborting after the first one.
func (a *Archive) ExtractAll(dir string) error {
	return a.r.ExtractAll(dir)
}

// ConvertSng parses every SNG-path entry and emits it as Rocksmith
// toolkit XML under dir/songs/arr/<stem>.xml, resolving an optional JSON
// manifest overlay by basename. Per-entry failures are logged and
// aggregated; the run continues.
func (a *Archive) ConvertSng(dir string) error {
	manifests := a.collectManifestEntries()

	var failures []container.EntryFailure
	names := a.r.FileList()
	for _, name := range names {
		if !container.IsSngPath(name) {
			continue
		}
		if err := a.convertOneSng(dir, name, manifests); err != nil {
			a.Log.Errorf("convert %s: %v", name, err)
			failures = append(failures, container.EntryFailure{Name: name, Err: err})
			continue
		}
		a.Log.Infof("converted %s", name)
	}

	if len(failures) > 0 {
		return &container.PartialExtraction{Failures: failures}
	}
	return nil
}

// collectManifestEntries returns every archive entry name accepted by the
// manifest-candidate test (by default: contains "songs_dlc_" and ends in
// ".json"; Options.ManifestMatch replaces it).
func (a *Archive) collectManifestEntries() []string {
	var out []string
	for _, name := range a.r.FileList() {
		if a.manifestMatch(name) {
			out = append(out, name)
		}
	}
	return out
}

// findManifestFor matches an SNG entry's basename stem against the
// collected manifest entry names: stem-equal match wins, falling back to
// a substring match when no exact stem match exists.
func findManifestFor(sngName string, manifestNames []string) string {
	stem := strings.TrimSuffix(path.Base(sngName), path.Ext(sngName))
	stemLower := strings.ToLower(stem)

	for _, m := range manifestNames {
		mStem := strings.TrimSuffix(path.Base(m), path.Ext(m))
		if strings.EqualFold(mStem, stem) {
			return m
		}
	}
	for _, m := range manifestNames {
		if strings.Contains(strings.ToLower(m), stemLower) {
			return m
		}
	}
	return ""
}

func (a *Archive) convertOneSng(dir, name string, manifestNames []string) error {
	data, err := a.r.ExtractByName(name)
	if err != nil {
		return err
	}

	song, err := sng.Parse(data)
	if err != nil {
		return err
	}

	var overlay *manifest.Overlay
	if mName := findManifestFor(name, manifestNames); mName != "" {
		if raw, err := a.r.ExtractByName(mName); err == nil {
			if ov, err := manifest.Parse(raw); err == nil {
				overlay = ov
			}
		}
	}

	stem := strings.TrimSuffix(path.Base(name), path.Ext(name))
	outPath := filepath.Join(dir, "songs", "arr", stem+".xml")
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return &container.WriteFailed{Path: outPath, Err: err}
	}

	f, err := os.Create(outPath)
	if err != nil {
		return &container.WriteFailed{Path: outPath, Err: err}
	}
	defer f.Close()

	if err := xmlemit.Write(song, f, overlay); err != nil {
		return errors.Wrap(err, "emitting xml")
	}
	return nil
}

// ConvertAudio walks every .bnk entry, extracting its Wwise sound objects
// via conv and transcoding each to Ogg Vorbis under dir, preserving the
// entry's archive-relative directory. A bank entry whose data is streamed
// separately is matched to the .wem archive entry sharing its numeric ID;
// that .wem is then skipped when standalone .wem entries are converted
// afterward, so nothing is converted twice. A bank with more than one
// entry gets its outputs suffixed "_0", "_1", ... after the bank's own
// stem; a single-entry bank is named after the stem alone.
func (a *Archive) ConvertAudio(dir string, conv AudioConverter) error {
	var bnkNames, wemNames []string
	for _, name := range a.r.FileList() {
		switch {
		case strings.HasSuffix(name, ".bnk"):
			bnkNames = append(bnkNames, name)
		case strings.HasSuffix(name, ".wem"):
			wemNames = append(wemNames, name)
		}
	}

	referencedWems := make(map[string]bool)
	var failures []container.EntryFailure

	for _, bnkName := range bnkNames {
		bnkData, err := a.r.ExtractByName(bnkName)
		if err != nil {
			a.Log.Errorf("extract %s: %v", bnkName, err)
			failures = append(failures, container.EntryFailure{Name: bnkName, Err: err})
			continue
		}
		entries, err := conv.BnkExtract(bnkData)
		if err != nil {
			a.Log.Errorf("bnk extract %s: %v", bnkName, err)
			failures = append(failures, container.EntryFailure{Name: bnkName, Err: err})
			continue
		}

		stem := strings.TrimSuffix(path.Base(bnkName), path.Ext(bnkName))
		for i, e := range entries {
			wemData := e.Data
			if e.Streamed {
				found := findWemByID(wemNames, e.ID)
				if found == "" {
					err := errors.Errorf("streamed wem %d not found in archive", e.ID)
					a.Log.Errorf("%s: %v", bnkName, err)
					failures = append(failures, container.EntryFailure{Name: bnkName, Err: err})
					continue
				}
				referencedWems[found] = true
				raw, err := a.r.ExtractByName(found)
				if err != nil {
					a.Log.Errorf("extract %s: %v", found, err)
					failures = append(failures, container.EntryFailure{Name: found, Err: err})
					continue
				}
				wemData = raw
			}
			if len(wemData) == 0 {
				continue
			}

			oggData, err := conv.Wem2Ogg(wemData)
			if err != nil {
				a.Log.Errorf("%s (wem %d): %v", bnkName, e.ID, err)
				failures = append(failures, container.EntryFailure{Name: bnkName, Err: err})
				continue
			}

			oggName := stem
			if len(entries) > 1 {
				oggName += fmt.Sprintf("_%d", i)
			}
			oggName += ".ogg"
			if err := writeAudioOutput(dir, path.Dir(bnkName), oggName, oggData); err != nil {
				a.Log.Errorf("write %s: %v", oggName, err)
				failures = append(failures, container.EntryFailure{Name: oggName, Err: err})
				continue
			}
			a.Log.Infof("converted %s -> %s", bnkName, oggName)
		}
	}

	for _, wemName := range wemNames {
		if referencedWems[wemName] {
			continue
		}
		raw, err := a.r.ExtractByName(wemName)
		if err != nil {
			a.Log.Errorf("extract %s: %v", wemName, err)
			failures = append(failures, container.EntryFailure{Name: wemName, Err: err})
			continue
		}
		oggData, err := conv.Wem2Ogg(raw)
		if err != nil {
			a.Log.Errorf("convert %s: %v", wemName, err)
			failures = append(failures, container.EntryFailure{Name: wemName, Err: err})
			continue
		}
		oggName := strings.TrimSuffix(path.Base(wemName), path.Ext(wemName)) + ".ogg"
		if err := writeAudioOutput(dir, path.Dir(wemName), oggName, oggData); err != nil {
			a.Log.Errorf("write %s: %v", oggName, err)
			failures = append(failures, container.EntryFailure{Name: oggName, Err: err})
			continue
		}
		a.Log.Infof("converted %s -> %s", wemName, oggName)
	}

	if len(failures) > 0 {
		return &container.PartialExtraction{Failures: failures}
	}
	return nil
}

func findWemByID(wemNames []string, id int) string {
	want := strconv.Itoa(id)
	for _, name := range wemNames {
		stem := strings.TrimSuffix(path.Base(name), path.Ext(name))
		if stem == want {
			return name
		}
	}
	return ""
}

func writeAudioOutput(dir, archiveRelDir, name string, data []byte) error {
	outPath := filepath.Join(dir, filepath.FromSlash(archiveRelDir), name)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return &container.WriteFailed{Path: outPath, Err: err}
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return &container.WriteFailed{Path: outPath, Err: err}
	}
	return nil
}
