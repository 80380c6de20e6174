package sng

import (
	"encoding/binary"
	"fmt"

	"github.com/mogaika/open-psarc/binreader"
)

// TrailingBytes is returned when a parse succeeds but leaves unread bytes
// in the buffer; the SNG format's terminal invariant requires an exact
// match between cursor position and buffer length.
type TrailingBytes struct {
	Remaining int
}

func (e *TrailingBytes) Error() string {
	return fmt.Sprintf("%d bytes remaining after parsing sng data", e.Remaining)
}

// Parse consumes a decoded SNG buffer (see Decode) into a SongData value,
// reading the eighteen sections in strict declared order.
func Parse(data []byte) (*SongData, error) {
	r := binreader.New(data)
	s := &SongData{}

	var err error
	if s.Bpms, err = readBpms(r); err != nil {
		return nil, err
	}
	if s.Phrases, err = readPhrases(r); err != nil {
		return nil, err
	}
	if s.Chords, err = readChords(r); err != nil {
		return nil, err
	}
	if s.ChordNotes, err = readChordNotes(r); err != nil {
		return nil, err
	}
	if s.Vocals, err = readVocals(r); err != nil {
		return nil, err
	}
	if len(s.Vocals) > 0 {
		if s.SymbolsHeaders, err = readSymbolsHeaders(r); err != nil {
			return nil, err
		}
		if s.SymbolsTextures, err = readSymbolsTextures(r); err != nil {
			return nil, err
		}
		if s.SymbolDefinitions, err = readSymbolDefinitions(r); err != nil {
			return nil, err
		}
	}
	if s.PhraseIterations, err = readPhraseIterations(r); err != nil {
		return nil, err
	}
	if s.PhraseExtraInfos, err = readPhraseExtraInfos(r); err != nil {
		return nil, err
	}
	if s.NLinkedDifficulties, err = readNLinkedDifficulties(r); err != nil {
		return nil, err
	}
	if s.Actions, err = readActions(r); err != nil {
		return nil, err
	}
	if s.Events, err = readEvents(r); err != nil {
		return nil, err
	}
	if s.Tones, err = readTones(r); err != nil {
		return nil, err
	}
	if s.Dnas, err = readDnas(r); err != nil {
		return nil, err
	}
	if s.Sections, err = readSections(r); err != nil {
		return nil, err
	}
	if s.Arrangements, err = readArrangements(r); err != nil {
		return nil, err
	}
	if s.Metadata, err = readMetadata(r); err != nil {
		return nil, err
	}

	if r.Remaining() != 0 {
		return nil, &TrailingBytes{Remaining: r.Remaining()}
	}
	return s, nil
}

func count32(r *binreader.Reader) (int32, error) {
	return r.I32(binary.LittleEndian)
}

func readBendValue(r *binreader.Reader) (BendValue, error) {
	var bv BendValue
	var err error
	if bv.Time, err = r.F32LE(); err != nil {
		return bv, err
	}
	if bv.Step, err = r.F32LE(); err != nil {
		return bv, err
	}
	if bv.Unk1, err = r.I16(binary.LittleEndian); err != nil {
		return bv, err
	}
	if bv.Unk2, err = r.U8(); err != nil {
		return bv, err
	}
	if bv.Unk3, err = r.U8(); err != nil {
		return bv, err
	}
	return bv, nil
}

func readBpms(r *binreader.Reader) ([]Bpm, error) {
	n, err := count32(r)
	if err != nil {
		return nil, err
	}
	out := make([]Bpm, n)
	for i := range out {
		if out[i].Time, err = r.F32LE(); err != nil {
			return nil, err
		}
		if out[i].Measure, err = r.I16(binary.LittleEndian); err != nil {
			return nil, err
		}
		if out[i].Beat, err = r.I16(binary.LittleEndian); err != nil {
			return nil, err
		}
		if out[i].PhraseIteration, err = r.I32(binary.LittleEndian); err != nil {
			return nil, err
		}
		if out[i].Mask, err = r.I32(binary.LittleEndian); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func readPhrases(r *binreader.Reader) ([]Phrase, error) {
	n, err := count32(r)
	if err != nil {
		return nil, err
	}
	out := make([]Phrase, n)
	for i := range out {
		p := &out[i]
		if p.Solo, err = r.U8(); err != nil {
			return nil, err
		}
		if p.Disparity, err = r.U8(); err != nil {
			return nil, err
		}
		if p.Ignore, err = r.U8(); err != nil {
			return nil, err
		}
		if p.Padding, err = r.U8(); err != nil {
			return nil, err
		}
		if p.MaxDifficulty, err = r.I32(binary.LittleEndian); err != nil {
			return nil, err
		}
		if p.PhraseIterationLinks, err = r.I32(binary.LittleEndian); err != nil {
			return nil, err
		}
		if p.Name, err = r.FixedString(32); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func readChords(r *binreader.Reader) ([]Chord, error) {
	n, err := count32(r)
	if err != nil {
		return nil, err
	}
	out := make([]Chord, n)
	for i := range out {
		c := &out[i]
		var mask32 uint32
		if mask32, err = r.U32(binary.LittleEndian); err != nil {
			return nil, err
		}
		c.Mask = mask32
		for j := 0; j < 6; j++ {
			raw, err := r.U8()
			if err != nil {
				return nil, err
			}
			c.Frets[j] = sentinelByteToInt8(raw)
		}
		for j := 0; j < 6; j++ {
			raw, err := r.U8()
			if err != nil {
				return nil, err
			}
			c.Fingers[j] = sentinelByteToInt8(raw)
		}
		for j := 0; j < 6; j++ {
			v, err := r.I32(binary.LittleEndian)
			if err != nil {
				return nil, err
			}
			c.Notes[j] = v
		}
		if c.Name, err = r.FixedString(32); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func readChordNotes(r *binreader.Reader) ([]ChordNotes, error) {
	n, err := count32(r)
	if err != nil {
		return nil, err
	}
	out := make([]ChordNotes, n)
	for i := range out {
		cn := &out[i]
		for j := 0; j < 6; j++ {
			if cn.Mask[j], err = r.U32(binary.LittleEndian); err != nil {
				return nil, err
			}
		}
		for j := 0; j < 6; j++ {
			values := make([]BendValue, 32)
			for k := range values {
				if values[k], err = readBendValue(r); err != nil {
					return nil, err
				}
			}
			used, err := r.I32(binary.LittleEndian)
			if err != nil {
				return nil, err
			}
			if used < 0 {
				used = 0
			}
			if int(used) > len(values) {
				used = int32(len(values))
			}
			cn.BendData[j] = BendData{BendValues: values[:used], UsedCount: used}
		}
		for j := 0; j < 6; j++ {
			if cn.SlideTo[j], err = r.I8(); err != nil {
				return nil, err
			}
		}
		for j := 0; j < 6; j++ {
			if cn.SlideUnpitchTo[j], err = r.I8(); err != nil {
				return nil, err
			}
		}
		for j := 0; j < 6; j++ {
			if cn.Vibrato[j], err = r.I16(binary.LittleEndian); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

func readVocals(r *binreader.Reader) ([]Vocal, error) {
	n, err := count32(r)
	if err != nil {
		return nil, err
	}
	out := make([]Vocal, n)
	for i := range out {
		v := &out[i]
		if v.Time, err = r.F32LE(); err != nil {
			return nil, err
		}
		if v.Note, err = r.I32(binary.LittleEndian); err != nil {
			return nil, err
		}
		if v.Length, err = r.F32LE(); err != nil {
			return nil, err
		}
		if v.Lyric, err = r.FixedString(48); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func readSymbolsHeaders(r *binreader.Reader) ([]SymbolsHeader, error) {
	n, err := count32(r)
	if err != nil {
		return nil, err
	}
	out := make([]SymbolsHeader, n)
	for i := range out {
		h := &out[i]
		fields := []*int32{&h.Unk1, &h.Unk2, &h.Unk3, &h.Unk4, &h.Unk5, &h.Unk6, &h.Unk7, &h.Unk8}
		for _, f := range fields {
			if *f, err = r.I32(binary.LittleEndian); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

func readSymbolsTextures(r *binreader.Reader) ([]SymbolsTexture, error) {
	n, err := count32(r)
	if err != nil {
		return nil, err
	}
	out := make([]SymbolsTexture, n)
	for i := range out {
		t := &out[i]
		if t.FontName, err = r.FixedString(128); err != nil {
			return nil, err
		}
		if t.FontPathLength, err = r.I32(binary.LittleEndian); err != nil {
			return nil, err
		}
		if t.Unk, err = r.I32(binary.LittleEndian); err != nil {
			return nil, err
		}
		if t.Width, err = r.I32(binary.LittleEndian); err != nil {
			return nil, err
		}
		if t.Height, err = r.I32(binary.LittleEndian); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func readSymbolDefinitions(r *binreader.Reader) ([]SymbolDefinition, error) {
	n, err := count32(r)
	if err != nil {
		return nil, err
	}
	out := make([]SymbolDefinition, n)
	for i := range out {
		d := &out[i]
		if d.Text, err = r.FixedString(12); err != nil {
			return nil, err
		}
		for j := 0; j < 4; j++ {
			if d.RectOuter[j], err = r.F32LE(); err != nil {
				return nil, err
			}
		}
		for j := 0; j < 4; j++ {
			if d.RectInner[j], err = r.F32LE(); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

func readPhraseIterations(r *binreader.Reader) ([]PhraseIteration, error) {
	n, err := count32(r)
	if err != nil {
		return nil, err
	}
	out := make([]PhraseIteration, n)
	for i := range out {
		p := &out[i]
		if p.PhraseID, err = r.I32(binary.LittleEndian); err != nil {
			return nil, err
		}
		if p.StartTime, err = r.F32LE(); err != nil {
			return nil, err
		}
		if p.NextPhraseTime, err = r.F32LE(); err != nil {
			return nil, err
		}
		for j := 0; j < 3; j++ {
			if p.Difficulty[j], err = r.I32(binary.LittleEndian); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

func readPhraseExtraInfos(r *binreader.Reader) ([]PhraseExtraInfo, error) {
	n, err := count32(r)
	if err != nil {
		return nil, err
	}
	out := make([]PhraseExtraInfo, n)
	for i := range out {
		p := &out[i]
		if p.PhraseID, err = r.I32(binary.LittleEndian); err != nil {
			return nil, err
		}
		if p.Difficulty, err = r.I32(binary.LittleEndian); err != nil {
			return nil, err
		}
		if p.Empty, err = r.I32(binary.LittleEndian); err != nil {
			return nil, err
		}
		if p.LevelJump, err = r.U8(); err != nil {
			return nil, err
		}
		if p.Redundant, err = r.I16(binary.LittleEndian); err != nil {
			return nil, err
		}
		if p.Padding, err = r.U8(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func readNLinkedDifficulties(r *binreader.Reader) ([]NLinkedDifficulty, error) {
	n, err := count32(r)
	if err != nil {
		return nil, err
	}
	out := make([]NLinkedDifficulty, n)
	for i := range out {
		nld := &out[i]
		if nld.LevelBreak, err = r.I32(binary.LittleEndian); err != nil {
			return nil, err
		}
		phraseCount, err := r.I32(binary.LittleEndian)
		if err != nil {
			return nil, err
		}
		nld.NldPhrases = make([]int32, phraseCount)
		for j := range nld.NldPhrases {
			if nld.NldPhrases[j], err = r.I32(binary.LittleEndian); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

func readActions(r *binreader.Reader) ([]Action, error) {
	n, err := count32(r)
	if err != nil {
		return nil, err
	}
	out := make([]Action, n)
	for i := range out {
		if out[i].Time, err = r.F32LE(); err != nil {
			return nil, err
		}
		if out[i].Name, err = r.FixedString(256); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func readEvents(r *binreader.Reader) ([]Event, error) {
	n, err := count32(r)
	if err != nil {
		return nil, err
	}
	out := make([]Event, n)
	for i := range out {
		if out[i].Time, err = r.F32LE(); err != nil {
			return nil, err
		}
		if out[i].Name, err = r.FixedString(256); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func readTones(r *binreader.Reader) ([]Tone, error) {
	n, err := count32(r)
	if err != nil {
		return nil, err
	}
	out := make([]Tone, n)
	for i := range out {
		if out[i].Time, err = r.F32LE(); err != nil {
			return nil, err
		}
		if out[i].ToneID, err = r.I32(binary.LittleEndian); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func readDnas(r *binreader.Reader) ([]Dna, error) {
	n, err := count32(r)
	if err != nil {
		return nil, err
	}
	out := make([]Dna, n)
	for i := range out {
		if out[i].Time, err = r.F32LE(); err != nil {
			return nil, err
		}
		if out[i].DnaID, err = r.I32(binary.LittleEndian); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func readSections(r *binreader.Reader) ([]Section, error) {
	n, err := count32(r)
	if err != nil {
		return nil, err
	}
	out := make([]Section, n)
	for i := range out {
		s := &out[i]
		if s.Name, err = r.FixedString(32); err != nil {
			return nil, err
		}
		if s.Number, err = r.I32(binary.LittleEndian); err != nil {
			return nil, err
		}
		if s.StartTime, err = r.F32LE(); err != nil {
			return nil, err
		}
		if s.EndTime, err = r.F32LE(); err != nil {
			return nil, err
		}
		if s.StartPhraseIterationIndex, err = r.I32(binary.LittleEndian); err != nil {
			return nil, err
		}
		if s.EndPhraseIterationIndex, err = r.I32(binary.LittleEndian); err != nil {
			return nil, err
		}
		for j := 0; j < 36; j++ {
			if s.StringBytes[j], err = r.U8(); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

func readNote(r *binreader.Reader) (Note, error) {
	var n Note
	var err error
	if n.Mask, err = r.U32(binary.LittleEndian); err != nil {
		return n, err
	}
	if n.Flags, err = r.U32(binary.LittleEndian); err != nil {
		return n, err
	}
	if n.Hash, err = r.U32(binary.LittleEndian); err != nil {
		return n, err
	}
	if n.Time, err = r.F32LE(); err != nil {
		return n, err
	}
	if n.String, err = r.I8(); err != nil {
		return n, err
	}
	if n.Fret, err = r.I8(); err != nil {
		return n, err
	}
	if n.AnchorFret, err = r.I8(); err != nil {
		return n, err
	}
	if n.AnchorWidth, err = r.I8(); err != nil {
		return n, err
	}
	if n.ChordID, err = r.I32(binary.LittleEndian); err != nil {
		return n, err
	}
	if n.ChordNotesID, err = r.I32(binary.LittleEndian); err != nil {
		return n, err
	}
	if n.PhraseID, err = r.I32(binary.LittleEndian); err != nil {
		return n, err
	}
	if n.PhraseIterationID, err = r.I32(binary.LittleEndian); err != nil {
		return n, err
	}
	if n.FingerprintID[0], err = r.I16(binary.LittleEndian); err != nil {
		return n, err
	}
	if n.FingerprintID[1], err = r.I16(binary.LittleEndian); err != nil {
		return n, err
	}
	if n.NextIteration, err = r.I16(binary.LittleEndian); err != nil {
		return n, err
	}
	if n.PrevIteration, err = r.I16(binary.LittleEndian); err != nil {
		return n, err
	}
	if n.ParentPrevNote, err = r.I16(binary.LittleEndian); err != nil {
		return n, err
	}
	if n.SlideTo, err = r.I8(); err != nil {
		return n, err
	}
	if n.SlideUnpitchTo, err = r.I8(); err != nil {
		return n, err
	}
	if n.LeftHand, err = r.I8(); err != nil {
		return n, err
	}
	if n.Tap, err = r.I8(); err != nil {
		return n, err
	}
	if n.PickDirection, err = r.I8(); err != nil {
		return n, err
	}
	if n.Slap, err = r.I8(); err != nil {
		return n, err
	}
	if n.Pluck, err = r.I8(); err != nil {
		return n, err
	}
	if n.Vibrato, err = r.I16(binary.LittleEndian); err != nil {
		return n, err
	}
	if n.Sustain, err = r.F32LE(); err != nil {
		return n, err
	}
	if n.MaxBend, err = r.F32LE(); err != nil {
		return n, err
	}
	bendCount, err := r.I32(binary.LittleEndian)
	if err != nil {
		return n, err
	}
	n.BendValues = make([]BendValue, bendCount)
	for i := range n.BendValues {
		if n.BendValues[i], err = readBendValue(r); err != nil {
			return n, err
		}
	}
	return n, nil
}

func readArrangements(r *binreader.Reader) ([]Arrangement, error) {
	n, err := count32(r)
	if err != nil {
		return nil, err
	}
	out := make([]Arrangement, n)
	for i := range out {
		a := &out[i]
		if a.Difficulty, err = r.I32(binary.LittleEndian); err != nil {
			return nil, err
		}

		anchorCount, err := r.I32(binary.LittleEndian)
		if err != nil {
			return nil, err
		}
		a.Anchors = make([]Anchor, anchorCount)
		for j := range a.Anchors {
			an := &a.Anchors[j]
			if an.StartTime, err = r.F32LE(); err != nil {
				return nil, err
			}
			if an.EndTime, err = r.F32LE(); err != nil {
				return nil, err
			}
			if an.Unk1, err = r.F32LE(); err != nil {
				return nil, err
			}
			if an.Unk2, err = r.F32LE(); err != nil {
				return nil, err
			}
			if an.Fret, err = r.I32(binary.LittleEndian); err != nil {
				return nil, err
			}
			if an.Width, err = r.I32(binary.LittleEndian); err != nil {
				return nil, err
			}
			if an.PhraseIterationIndex, err = r.I32(binary.LittleEndian); err != nil {
				return nil, err
			}
		}

		extCount, err := r.I32(binary.LittleEndian)
		if err != nil {
			return nil, err
		}
		a.AnchorExtensions = make([]AnchorExtension, extCount)
		for j := range a.AnchorExtensions {
			e := &a.AnchorExtensions[j]
			if e.BeatTime, err = r.F32LE(); err != nil {
				return nil, err
			}
			if e.FretID, err = r.I8(); err != nil {
				return nil, err
			}
			if e.Unk2, err = r.I32(binary.LittleEndian); err != nil {
				return nil, err
			}
			if e.Unk3, err = r.I16(binary.LittleEndian); err != nil {
				return nil, err
			}
			if e.Unk4, err = r.I8(); err != nil {
				return nil, err
			}
		}

		a.FingerprintsHandshape, err = readFingerprints(r)
		if err != nil {
			return nil, err
		}
		a.FingerprintsArpeggio, err = readFingerprints(r)
		if err != nil {
			return nil, err
		}

		noteCount, err := r.I32(binary.LittleEndian)
		if err != nil {
			return nil, err
		}
		a.Notes = make([]Note, noteCount)
		for j := range a.Notes {
			if a.Notes[j], err = readNote(r); err != nil {
				return nil, err
			}
		}

		if a.PhraseCount, err = r.I32(binary.LittleEndian); err != nil {
			return nil, err
		}
		a.AverageNotesPerIteration = make([]float32, a.PhraseCount)
		for j := range a.AverageNotesPerIteration {
			if a.AverageNotesPerIteration[j], err = r.F32LE(); err != nil {
				return nil, err
			}
		}

		if a.PhraseIterationCount1, err = r.I32(binary.LittleEndian); err != nil {
			return nil, err
		}
		a.NotesInIteration1 = make([]int32, a.PhraseIterationCount1)
		for j := range a.NotesInIteration1 {
			if a.NotesInIteration1[j], err = r.I32(binary.LittleEndian); err != nil {
				return nil, err
			}
		}

		if a.PhraseIterationCount2, err = r.I32(binary.LittleEndian); err != nil {
			return nil, err
		}
		a.NotesInIteration2 = make([]int32, a.PhraseIterationCount2)
		for j := range a.NotesInIteration2 {
			if a.NotesInIteration2[j], err = r.I32(binary.LittleEndian); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

func readFingerprints(r *binreader.Reader) ([]Fingerprint, error) {
	n, err := r.I32(binary.LittleEndian)
	if err != nil {
		return nil, err
	}
	out := make([]Fingerprint, n)
	for i := range out {
		f := &out[i]
		if f.ChordID, err = r.I32(binary.LittleEndian); err != nil {
			return nil, err
		}
		if f.StartTime, err = r.F32LE(); err != nil {
			return nil, err
		}
		if f.EndTime, err = r.F32LE(); err != nil {
			return nil, err
		}
		if f.Unk1, err = r.F32LE(); err != nil {
			return nil, err
		}
		if f.Unk2, err = r.F32LE(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func readMetadata(r *binreader.Reader) (Metadata, error) {
	var m Metadata
	var err error
	if m.MaxScore, err = r.F64LE(); err != nil {
		return m, err
	}
	if m.MaxNotesAndChords, err = r.F64LE(); err != nil {
		return m, err
	}
	if m.MaxNotesAndChordsReal, err = r.F64LE(); err != nil {
		return m, err
	}
	if m.PointPerNote, err = r.F64LE(); err != nil {
		return m, err
	}
	if m.FirstBeatLength, err = r.F32LE(); err != nil {
		return m, err
	}
	if m.StartTime, err = r.F32LE(); err != nil {
		return m, err
	}
	if m.CapoFretID, err = r.I8(); err != nil {
		return m, err
	}
	if m.LastConversionDateTime, err = r.FixedString(32); err != nil {
		return m, err
	}
	if m.Part, err = r.I16(binary.LittleEndian); err != nil {
		return m, err
	}
	if m.SongLength, err = r.F32LE(); err != nil {
		return m, err
	}
	if m.StringCount, err = r.I32(binary.LittleEndian); err != nil {
		return m, err
	}
	m.Tuning = make([]int16, m.StringCount)
	for i := range m.Tuning {
		if m.Tuning[i], err = r.I16(binary.LittleEndian); err != nil {
			return m, err
		}
	}
	if m.FirstNoteTime, err = r.F32LE(); err != nil {
		return m, err
	}
	if m.FirstNoteTime2, err = r.F32LE(); err != nil {
		return m, err
	}
	if m.MaxDifficulty, err = r.I32(binary.LittleEndian); err != nil {
		return m, err
	}
	return m, nil
}
