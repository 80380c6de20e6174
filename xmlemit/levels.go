package xmlemit

import "github.com/mogaika/open-psarc/sng"

func writeLevels(b *builder, song *sng.SongData) {
	b.open("levels", attrInt("count", len(song.Arrangements)))
	for _, arr := range song.Arrangements {
		writeLevel(b, song, &arr)
	}
	b.close("levels")
}

func writeLevel(b *builder, song *sng.SongData, arr *sng.Arrangement) {
	b.open("level", attrInt("difficulty", int(arr.Difficulty)))

	var singles, chords []*sng.Note
	for i := range arr.Notes {
		n := &arr.Notes[i]
		if n.ChordID >= 0 && has(n.Mask, sng.MaskChord) {
			chords = append(chords, n)
		} else {
			singles = append(singles, n)
		}
	}

	b.open("notes", attrInt("count", len(singles)))
	for _, n := range singles {
		writeSingleNote(b, n)
	}
	b.close("notes")

	b.open("chords", attrInt("count", len(chords)))
	for _, n := range chords {
		writeChordNote(b, song, n)
	}
	b.close("chords")

	b.open("anchors", attrInt("count", len(arr.Anchors)))
	for _, a := range arr.Anchors {
		b.openClose("anchor",
			attrFloat3("time", a.StartTime),
			attrInt("fret", int(a.Fret)),
			attrFloat3("width", float32(a.Width)),
		)
	}
	b.close("anchors")

	handshapes := mergedHandshapes(arr)
	b.open("handShapes", attrInt("count", len(handshapes)))
	for _, hs := range handshapes {
		b.openClose("handShape",
			attrInt("chordId", int(hs.chordID)),
			attrFloat3("startTime", hs.start),
			attrFloat3("endTime", hs.end),
		)
	}
	b.close("handShapes")

	b.close("level")
}

func writeSingleNote(b *builder, n *sng.Note) {
	attrs := []xmlAttr{
		attrFloat3("time", n.Time),
		attrInt("string", int(n.String)),
		attrInt("fret", int(n.Fret)),
	}
	if n.Sustain > 0 {
		attrs = append(attrs, attrFloat3("sustain", n.Sustain))
	}
	attrs = append(attrs, noteFlagAttrs(n)...)

	if len(n.BendValues) == 0 {
		b.openClose("note", attrs...)
		return
	}
	b.open("note", attrs...)
	writeBendValues(b, n.BendValues)
	b.close("note")
}

// noteFlagAttrs produces the shared technique-flag attribute subset used by
// both single notes and chordNote children, in the fixed emission order.
func noteFlagAttrs(n *sng.Note) []xmlAttr {
	var attrs []xmlAttr
	mask := n.Mask
	if has(mask, sng.MaskParent) {
		attrs = append(attrs, attrInt("linkNext", 1))
	}
	if has(mask, sng.MaskAccent) {
		attrs = append(attrs, attrInt("accent", 1))
	}
	if len(n.BendValues) != 0 {
		attrs = append(attrs, attrFloatPlain("bend", n.MaxBend))
	}
	if has(mask, sng.MaskHammerOn) {
		attrs = append(attrs, attrInt("hammerOn", 1))
	}
	if has(mask, sng.MaskHarmonic) {
		attrs = append(attrs, attrInt("harmonic", 1))
	}
	if has(mask, sng.MaskHammerOn) || has(mask, sng.MaskPullOff) {
		attrs = append(attrs, attrInt("hopo", 1))
	}
	if has(mask, sng.MaskIgnore) {
		attrs = append(attrs, attrInt("ignore", 1))
	}
	if n.LeftHand >= 0 {
		attrs = append(attrs, attrInt("leftHand", int(n.LeftHand)))
	}
	if has(mask, sng.MaskMute) {
		attrs = append(attrs, attrInt("mute", 1))
	}
	if has(mask, sng.MaskPalmMute) {
		attrs = append(attrs, attrInt("palmMute", 1))
	}
	if has(mask, sng.MaskPluck) {
		attrs = append(attrs, attrInt("pluck", 1))
	}
	if has(mask, sng.MaskPullOff) {
		attrs = append(attrs, attrInt("pullOff", 1))
	}
	if has(mask, sng.MaskSlap) {
		attrs = append(attrs, attrInt("slap", 1))
	}
	if has(mask, sng.MaskSlide) && n.SlideTo >= 0 {
		attrs = append(attrs, attrInt("slideTo", int(n.SlideTo)))
	}
	if has(mask, sng.MaskTremolo) {
		attrs = append(attrs, attrInt("tremolo", 1))
	}
	if has(mask, sng.MaskPinchHarmonic) {
		attrs = append(attrs, attrInt("harmonicPinch", 1))
	}
	if n.PickDirection > 0 {
		attrs = append(attrs, attrInt("pickDirection", 1))
	}
	if has(mask, sng.MaskRightHand) {
		attrs = append(attrs, attrInt("rightHand", 1))
	}
	if has(mask, sng.MaskSlideUnpitchedTo) && n.SlideUnpitchTo >= 0 {
		attrs = append(attrs, attrInt("slideUnpitchTo", int(n.SlideUnpitchTo)))
	}
	if has(mask, sng.MaskTap) {
		tap := int(n.Tap)
		if tap < 0 {
			tap = 0
		}
		attrs = append(attrs, attrInt("tap", tap))
	}
	if has(mask, sng.MaskVibrato) && n.Vibrato > 0 {
		attrs = append(attrs, attrInt("vibrato", int(n.Vibrato)))
	}
	return attrs
}

func writeBendValues(b *builder, bends []sng.BendValue) {
	if len(bends) == 0 {
		return
	}
	b.open("bendValues", attrInt("count", len(bends)))
	for _, bend := range bends {
		attrs := []xmlAttr{attrFloat3("time", bend.Time)}
		if abs32(bend.Step) > 0.000001 {
			attrs = append(attrs, attrFloat3("step", bend.Step))
		}
		b.openClose("bendValue", attrs...)
	}
	b.close("bendValues")
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func writeChordNote(b *builder, song *sng.SongData, n *sng.Note) {
	attrs := []xmlAttr{
		attrFloat3("time", n.Time),
		attrInt("chordId", int(n.ChordID)),
	}
	mask := n.Mask
	if has(mask, sng.MaskParent) {
		attrs = append(attrs, attrInt("linkNext", 1))
	}
	if has(mask, sng.MaskAccent) {
		attrs = append(attrs, attrInt("accent", 1))
	}
	if has(mask, sng.MaskFretHandMute) {
		attrs = append(attrs, attrInt("fretHandMute", 1))
	}
	if has(mask, sng.MaskHighDensity) {
		attrs = append(attrs, attrInt("highDensity", 1))
	}
	if has(mask, sng.MaskIgnore) {
		attrs = append(attrs, attrInt("ignore", 1))
	}
	if has(mask, sng.MaskPalmMute) {
		attrs = append(attrs, attrInt("palmMute", 1))
	}
	if has(mask, sng.MaskHammerOn) || has(mask, sng.MaskPullOff) {
		attrs = append(attrs, attrInt("hopo", 1))
	}

	if !has(mask, sng.MaskChordPanel) {
		b.openClose("chord", attrs...)
		return
	}

	b.open("chord", attrs...)
	for s := 0; s < 6; s++ {
		writeChordNoteFromTemplate(b, song, n, s)
	}
	b.close("chord")
}

// writeChordNoteFromTemplate emits a <chordNote> for one string of a
// CHORDPANEL chord, sourced from the chord template's fret/finger arrays
// and (when available) the matching ChordNotes technique data.
func writeChordNoteFromTemplate(b *builder, song *sng.SongData, n *sng.Note, stringIdx int) {
	if n.ChordID < 0 || int(n.ChordID) >= len(song.Chords) {
		return
	}
	tmpl := &song.Chords[n.ChordID]
	if tmpl.Frets[stringIdx] == sng.NoFret {
		return
	}

	attrs := []xmlAttr{
		attrFloat3("time", n.Time),
		attrInt("string", stringIdx),
		attrInt("fret", int(tmpl.Frets[stringIdx])),
	}
	if n.Sustain > 0 {
		attrs = append(attrs, attrFloat3("sustain", n.Sustain))
	}
	leftHand := int(tmpl.Fingers[stringIdx])

	if n.ChordNotesID < 0 || int(n.ChordNotesID) >= len(song.ChordNotes) {
		if leftHand != -1 {
			attrs = append(attrs, attrInt("leftHand", leftHand))
		}
		b.openClose("chordNote", attrs...)
		return
	}

	cn := &song.ChordNotes[n.ChordNotesID]
	cnMask := cn.Mask[stringIdx]
	if has(cnMask, sng.MaskParent) {
		attrs = append(attrs, attrInt("linkNext", 1))
	}
	if has(cnMask, sng.MaskAccent) {
		attrs = append(attrs, attrInt("accent", 1))
	}
	bendData := cn.BendData[stringIdx]
	if len(bendData.BendValues) != 0 {
		attrs = append(attrs, xmlAttr{"bend", "0"})
	}
	if has(cnMask, sng.MaskHammerOn) {
		attrs = append(attrs, attrInt("hammerOn", 1))
	}
	if has(cnMask, sng.MaskHarmonic) {
		attrs = append(attrs, attrInt("harmonic", 1))
	}
	if has(cnMask, sng.MaskHammerOn) || has(cnMask, sng.MaskPullOff) {
		attrs = append(attrs, attrInt("hopo", 1))
	}
	if has(cnMask, sng.MaskIgnore) {
		attrs = append(attrs, attrInt("ignore", 1))
	}
	if leftHand != -1 {
		attrs = append(attrs, attrInt("leftHand", leftHand))
	}
	if has(cnMask, sng.MaskMute) {
		attrs = append(attrs, attrInt("mute", 1))
	}
	if has(cnMask, sng.MaskPalmMute) {
		attrs = append(attrs, attrInt("palmMute", 1))
	}
	if has(cnMask, sng.MaskPluck) {
		attrs = append(attrs, attrInt("pluck", 1))
	}
	if has(cnMask, sng.MaskPullOff) {
		attrs = append(attrs, attrInt("pullOff", 1))
	}
	if has(cnMask, sng.MaskSlap) {
		attrs = append(attrs, attrInt("slap", 1))
	}
	if has(cnMask, sng.MaskSlide) && cn.SlideTo[stringIdx] >= 0 {
		attrs = append(attrs, attrInt("slideTo", int(cn.SlideTo[stringIdx])))
	}
	if has(cnMask, sng.MaskTremolo) {
		attrs = append(attrs, attrInt("tremolo", 1))
	}
	if has(cnMask, sng.MaskPinchHarmonic) {
		attrs = append(attrs, attrInt("harmonicPinch", 1))
	}
	if has(cnMask, sng.MaskRightHand) {
		attrs = append(attrs, attrInt("rightHand", 1))
	}
	if has(cnMask, sng.MaskSlideUnpitchedTo) && cn.SlideUnpitchTo[stringIdx] >= 0 {
		attrs = append(attrs, attrInt("slideUnpitchTo", int(cn.SlideUnpitchTo[stringIdx])))
	}
	if has(cnMask, sng.MaskVibrato) && cn.Vibrato[stringIdx] > 0 {
		attrs = append(attrs, attrInt("vibrato", int(cn.Vibrato[stringIdx])))
	}

	if len(bendData.BendValues) == 0 {
		b.openClose("chordNote", attrs...)
		return
	}
	b.open("chordNote", attrs...)
	writeBendValues(b, bendData.BendValues)
	b.close("chordNote")
}
