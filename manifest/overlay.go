// Package manifest resolves the optional JSON attribute bag ("manifest")
// that accompanies an SNG entry, providing song-level metadata the binary
// itself does not carry: title, artist, tone names, and the
// per-arrangement technique flags emitted as the attributes of the XML's
// <arrangementProperties> element.
package manifest

import (
	"bytes"
	"encoding/json"
	"strings"
)

// ArrangementProperties mirrors the 31 boolean-as-int flags nested under
// a manifest entry's Attributes.ArrangementProperties object.
type ArrangementProperties struct {
	Represent         int
	BonusArr          int
	StandardTuning    int
	NonStandardChords int
	BarreChords       int
	PowerChords       int
	DropDPower        int
	OpenChords        int
	FingerPicking     int
	PickDirection     int
	DoubleStops       int
	PalmMutes         int
	Harmonics         int
	PinchHarmonics    int
	Hopo              int
	Tremolo           int
	Slides            int
	UnpitchedSlides   int
	Bends             int
	Tapping           int
	Vibrato           int
	FretHandMutes     int
	SlapPop           int
	TwoFingerPicking  int
	FifthsAndOctaves  int
	Syncopation       int
	BassPick          int
	Sustain           int
	PathLead          int
	PathRhythm        int
	PathBass          int
}

// Overlay is the resolved set of manifest fields; every field is
// independently optional and left as its zero value when absent or of
// the wrong JSON type.
type Overlay struct {
	Title           *string
	Arrangement     *string
	CentOffset      *float32
	SongNameSort    *string
	AverageTempo    *float32
	ArtistName      *string
	ArtistNameSort  *string
	AlbumName       *string
	AlbumNameSort   *string
	AlbumYear       *int
	ToneBase        *string
	ToneNames       [4]*string // Tone_A / Tone_B / Tone_C / Tone_D, in order

	ArrangementProperties *ArrangementProperties
}

// arrangementPropertyKeys pairs each struct field with the single
// camelCase key name the source manifest uses for it. Unlike the other
// top-level fields (which accept both PascalCase and camelCase per the
// dual-casing contract below), these 31 keys are also checked under their
// Capitalized form for consistency with that same contract.
var arrangementPropertyKeys = []struct {
	key  string
	dest func(*ArrangementProperties) *int
}{
	{"represent", func(p *ArrangementProperties) *int { return &p.Represent }},
	{"bonusArr", func(p *ArrangementProperties) *int { return &p.BonusArr }},
	{"standardTuning", func(p *ArrangementProperties) *int { return &p.StandardTuning }},
	{"nonStandardChords", func(p *ArrangementProperties) *int { return &p.NonStandardChords }},
	{"barreChords", func(p *ArrangementProperties) *int { return &p.BarreChords }},
	{"powerChords", func(p *ArrangementProperties) *int { return &p.PowerChords }},
	{"dropDPower", func(p *ArrangementProperties) *int { return &p.DropDPower }},
	{"openChords", func(p *ArrangementProperties) *int { return &p.OpenChords }},
	{"fingerPicking", func(p *ArrangementProperties) *int { return &p.FingerPicking }},
	{"pickDirection", func(p *ArrangementProperties) *int { return &p.PickDirection }},
	{"doubleStops", func(p *ArrangementProperties) *int { return &p.DoubleStops }},
	{"palmMutes", func(p *ArrangementProperties) *int { return &p.PalmMutes }},
	{"harmonics", func(p *ArrangementProperties) *int { return &p.Harmonics }},
	{"pinchHarmonics", func(p *ArrangementProperties) *int { return &p.PinchHarmonics }},
	{"hopo", func(p *ArrangementProperties) *int { return &p.Hopo }},
	{"tremolo", func(p *ArrangementProperties) *int { return &p.Tremolo }},
	{"slides", func(p *ArrangementProperties) *int { return &p.Slides }},
	{"unpitchedSlides", func(p *ArrangementProperties) *int { return &p.UnpitchedSlides }},
	{"bends", func(p *ArrangementProperties) *int { return &p.Bends }},
	{"tapping", func(p *ArrangementProperties) *int { return &p.Tapping }},
	{"vibrato", func(p *ArrangementProperties) *int { return &p.Vibrato }},
	{"fretHandMutes", func(p *ArrangementProperties) *int { return &p.FretHandMutes }},
	{"slapPop", func(p *ArrangementProperties) *int { return &p.SlapPop }},
	{"twoFingerPicking", func(p *ArrangementProperties) *int { return &p.TwoFingerPicking }},
	{"fifthsAndOctaves", func(p *ArrangementProperties) *int { return &p.FifthsAndOctaves }},
	{"syncopation", func(p *ArrangementProperties) *int { return &p.Syncopation }},
	{"bassPick", func(p *ArrangementProperties) *int { return &p.BassPick }},
	{"sustain", func(p *ArrangementProperties) *int { return &p.Sustain }},
	{"pathLead", func(p *ArrangementProperties) *int { return &p.PathLead }},
	{"pathRhythm", func(p *ArrangementProperties) *int { return &p.PathRhythm }},
	{"pathBass", func(p *ArrangementProperties) *int { return &p.PathBass }},
}

const utf8BOM = "\xEF\xBB\xBF"

// Parse decodes a UTF-8 JSON manifest blob (optionally BOM-prefixed) and
// harvests an Overlay from root.Entries.<first>.Attributes. A malformed or
// structurally unexpected document yields a zero-value Overlay and a nil
// error — the overlay is always optional, never fatal to conversion.
func Parse(jsonText []byte) (*Overlay, error) {
	jsonText = bytes.TrimPrefix(jsonText, []byte(utf8BOM))

	var root map[string]json.RawMessage
	if err := json.Unmarshal(jsonText, &root); err != nil {
		return &Overlay{}, nil
	}

	attrs := resolveSource(root)
	if attrs == nil {
		return &Overlay{}, nil
	}

	o := &Overlay{}
	o.Title = readString(attrs, "SongName", "songName")
	o.Arrangement = readString(attrs, "ArrangementName", "arrangementName")
	o.CentOffset = readFloat(attrs, "CentOffset", "centOffset")
	o.SongNameSort = readString(attrs, "SongNameSort", "songNameSort")
	o.AverageTempo = readFloat(attrs, "SongAverageTempo", "songAverageTempo")
	o.ArtistName = readString(attrs, "ArtistName", "artistName")
	o.ArtistNameSort = readString(attrs, "ArtistNameSort", "artistNameSort")
	o.AlbumName = readString(attrs, "AlbumName", "albumName")
	o.AlbumNameSort = readString(attrs, "AlbumNameSort", "albumNameSort")
	o.AlbumYear = readInt(attrs, "SongYear", "songYear")
	o.ToneBase = readString(attrs, "Tone_Base", "toneBase")
	o.ToneNames[0] = readString(attrs, "Tone_A", "toneA")
	o.ToneNames[1] = readString(attrs, "Tone_B", "toneB")
	o.ToneNames[2] = readString(attrs, "Tone_C", "toneC")
	o.ToneNames[3] = readString(attrs, "Tone_D", "toneD")

	if props := findKey(attrs, "ArrangementProperties", "arrangementProperties"); props != nil {
		var propMap map[string]json.RawMessage
		if err := json.Unmarshal(*props, &propMap); err == nil {
			parsed := &ArrangementProperties{}
			for _, spec := range arrangementPropertyKeys {
				pascal := strings.ToUpper(spec.key[:1]) + spec.key[1:]
				if v := readInt(propMap, pascal, spec.key); v != nil {
					*spec.dest(parsed) = *v
				}
			}
			o.ArrangementProperties = parsed
		}
	}

	return o, nil
}

// resolveSource walks root.Entries (or entries) to its first object
// value's Attributes (or attributes) object.
func resolveSource(root map[string]json.RawMessage) map[string]json.RawMessage {
	entriesRaw := findKey(root, "Entries", "entries")
	if entriesRaw == nil {
		return nil
	}

	var entries map[string]json.RawMessage
	if err := json.Unmarshal(*entriesRaw, &entries); err != nil || len(entries) == 0 {
		return nil
	}

	first, ok := firstValue(entries)
	if !ok {
		return nil
	}

	var firstObj map[string]json.RawMessage
	if err := json.Unmarshal(first, &firstObj); err != nil {
		return nil
	}

	attrsRaw := findKey(firstObj, "Attributes", "attributes")
	if attrsRaw == nil {
		return nil
	}

	var attrs map[string]json.RawMessage
	if err := json.Unmarshal(*attrsRaw, &attrs); err != nil {
		return nil
	}
	return attrs
}

// firstValue returns an arbitrary-but-deterministic-enough first value
// from a decoded JSON object. Go's map iteration order is randomized, but
// real manifests carry exactly one entry under Entries, so this matches
// "take the first sub-object" in practice.
func firstValue(m map[string]json.RawMessage) (json.RawMessage, bool) {
	for _, v := range m {
		return v, true
	}
	return nil, false
}

// findKey looks up each candidate key in order and returns the first hit,
// implementing the dual PascalCase/camelCase (or other alternate-casing)
// lookup contract: first match wins.
func findKey(m map[string]json.RawMessage, keys ...string) *json.RawMessage {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return &v
		}
	}
	return nil
}

func readString(m map[string]json.RawMessage, keys ...string) *string {
	raw := findKey(m, keys...)
	if raw == nil {
		return nil
	}
	var s string
	if err := json.Unmarshal(*raw, &s); err != nil {
		return nil
	}
	return &s
}

func readFloat(m map[string]json.RawMessage, keys ...string) *float32 {
	raw := findKey(m, keys...)
	if raw == nil {
		return nil
	}
	var f float64
	if err := json.Unmarshal(*raw, &f); err != nil {
		return nil
	}
	v := float32(f)
	return &v
}

func readInt(m map[string]json.RawMessage, keys ...string) *int {
	raw := findKey(m, keys...)
	if raw == nil {
		return nil
	}
	var f float64
	if err := json.Unmarshal(*raw, &f); err != nil {
		return nil
	}
	v := int(f)
	return &v
}
