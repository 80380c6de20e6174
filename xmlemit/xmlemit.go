// Package xmlemit renders a parsed SNG song into the Rocksmith toolkit's
// XML arrangement format. A vocals arrangement becomes a flat
// <vocals count="N"> document; every other arrangement becomes a
// <song version="8"> document carrying the overlay metadata, note
// streams, and per-difficulty levels in a fixed element order.
package xmlemit

import (
	"bufio"
	"io"
	"sort"
	"strconv"

	"github.com/mogaika/open-psarc/manifest"
	"github.com/mogaika/open-psarc/sng"
)

// Write renders song to w as UTF-8 XML. overlay may be nil; every overlay
// field it omits falls back to its documented default.
func Write(song *sng.SongData, w io.Writer, overlay *manifest.Overlay) error {
	bw := bufio.NewWriter(w)
	b := newBuilder(bw)

	if song.IsVocalsFile() {
		writeVocals(b, song)
	} else {
		writeInstrumental(b, song, overlay)
	}

	if err := b.err; err != nil {
		return err
	}
	return bw.Flush()
}

func writeVocals(b *builder, song *sng.SongData) {
	b.decl()
	b.open("vocals", attrInt("count", len(song.Vocals)))
	for _, v := range song.Vocals {
		b.openClose("vocal",
			attrFloat3("time", v.Time),
			attrInt("note", int(v.Note)),
			attrFloat3("length", v.Length),
			attrStr("lyric", v.Lyric),
		)
	}
	b.close("vocals")
}

func formatFloat3(v float32) string {
	return strconv.FormatFloat(float64(v), 'f', 3, 32)
}

// formatFloatPlain renders v without a fixed decimal count, matching the
// "shortest round-tripping decimal" style used only for the header's
// centOffset and a single note's bend attribute.
func formatFloatPlain(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

func has(mask uint32, flag sng.Mask) bool {
	return sng.Mask(mask).Has(flag)
}

// handshapeView is the common projection used to merge the handshape and
// arpeggio fingerprint streams before sorting by start time.
type handshapeView struct {
	chordID int32
	start   float32
	end     float32
}

func mergedHandshapes(arr *sng.Arrangement) []handshapeView {
	views := make([]handshapeView, 0, len(arr.FingerprintsHandshape)+len(arr.FingerprintsArpeggio))
	for _, hs := range arr.FingerprintsHandshape {
		views = append(views, handshapeView{chordID: hs.ChordID, start: hs.StartTime, end: hs.EndTime})
	}
	for _, ap := range arr.FingerprintsArpeggio {
		views = append(views, handshapeView{chordID: ap.ChordID, start: ap.StartTime, end: ap.EndTime})
	}
	sort.SliceStable(views, func(i, j int) bool { return views[i].start < views[j].start })
	return views
}
