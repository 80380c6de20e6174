package xmlemit

import (
	"strconv"

	"github.com/mogaika/open-psarc/manifest"
	"github.com/mogaika/open-psarc/sng"
)

func writeInstrumental(b *builder, song *sng.SongData, overlay *manifest.Overlay) {
	b.decl()
	b.open("song", attrInt("version", 8))

	writeHeader(b, song, overlay)

	writePhrases(b, song)
	writePhraseIterations(b, song)
	writeNewLinkedDiffs(b, song)
	writePhraseProperties(b, song)
	writeChordTemplates(b, song)
	writeEbeats(b, song)
	writeTones(b, song, overlay)
	writeSections(b, song)
	writeEvents(b, song)
	writeEmptyTranscriptionTrack(b)
	writeLevels(b, song)

	b.close("song")
}

func writeHeader(b *builder, song *sng.SongData, overlay *manifest.Overlay) {
	m := &song.Metadata

	b.textElement("title", orString(overlayStr(overlay, func(o *manifest.Overlay) *string { return o.Title }), ""))
	b.textElement("arrangement", orString(overlayStr(overlay, func(o *manifest.Overlay) *string { return o.Arrangement }), ""))
	b.textElement("part", itoa(int(m.Part)))
	b.textElement("offset", formatFloat3(-m.StartTime))

	centOffset := float32(0)
	if overlay != nil && overlay.CentOffset != nil {
		centOffset = *overlay.CentOffset
	}
	// Unlike the other float header fields, centOffset is not fixed to
	// three decimals in the reference writer.
	b.textElement("centOffset", formatFloatPlain(centOffset))

	b.textElement("songLength", formatFloat3(m.SongLength))
	b.textElement("songNameSort", orString(overlayStr(overlay, func(o *manifest.Overlay) *string { return o.SongNameSort }), ""))
	b.textElement("startBeat", formatFloat3(m.StartTime))

	averageTempo := float32(120.0)
	if overlay != nil && overlay.AverageTempo != nil {
		averageTempo = *overlay.AverageTempo
	}
	b.textElement("averageTempo", formatFloat3(averageTempo))

	tuningAttrs := make([]xmlAttr, 6)
	for i := 0; i < 6; i++ {
		v := 0
		if i < len(m.Tuning) {
			v = int(m.Tuning[i])
		}
		tuningAttrs[i] = attrInt(tuningAttrName(i), v)
	}
	b.openClose("tuning", tuningAttrs...)

	capo := int(m.CapoFretID)
	if capo < 0 {
		capo = 0
	}
	b.textElement("capo", itoa(capo))

	b.textElement("artistName", orString(overlayStr(overlay, func(o *manifest.Overlay) *string { return o.ArtistName }), ""))
	b.textElement("artistNameSort", orString(overlayStr(overlay, func(o *manifest.Overlay) *string { return o.ArtistNameSort }), ""))
	b.textElement("albumName", orString(overlayStr(overlay, func(o *manifest.Overlay) *string { return o.AlbumName }), ""))
	b.textElement("albumNameSort", orString(overlayStr(overlay, func(o *manifest.Overlay) *string { return o.AlbumNameSort }), ""))

	albumYear := 0
	if overlay != nil && overlay.AlbumYear != nil {
		albumYear = *overlay.AlbumYear
	}
	b.textElement("albumYear", itoa(albumYear))
	b.textElement("crowdSpeed", "1")

	writeArrangementProperties(b, overlay)

	b.textElement("lastConversionDateTime", m.LastConversionDateTime)
}

func tuningAttrName(i int) string {
	return "string" + itoa(i)
}

func overlayStr(overlay *manifest.Overlay, get func(*manifest.Overlay) *string) *string {
	if overlay == nil {
		return nil
	}
	return get(overlay)
}

func orString(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}

func writeArrangementProperties(b *builder, overlay *manifest.Overlay) {
	var p manifest.ArrangementProperties
	if overlay != nil && overlay.ArrangementProperties != nil {
		p = *overlay.ArrangementProperties
	}
	b.open("arrangementProperties",
		attrInt("represent", p.Represent),
		attrInt("bonusArr", p.BonusArr),
		attrInt("standardTuning", p.StandardTuning),
		attrInt("nonStandardChords", p.NonStandardChords),
		attrInt("barreChords", p.BarreChords),
		attrInt("powerChords", p.PowerChords),
		attrInt("dropDPower", p.DropDPower),
		attrInt("openChords", p.OpenChords),
		attrInt("fingerPicking", p.FingerPicking),
		attrInt("pickDirection", p.PickDirection),
		attrInt("doubleStops", p.DoubleStops),
		attrInt("palmMutes", p.PalmMutes),
		attrInt("harmonics", p.Harmonics),
		attrInt("pinchHarmonics", p.PinchHarmonics),
		attrInt("hopo", p.Hopo),
		attrInt("tremolo", p.Tremolo),
		attrInt("slides", p.Slides),
		attrInt("unpitchedSlides", p.UnpitchedSlides),
		attrInt("bends", p.Bends),
		attrInt("tapping", p.Tapping),
		attrInt("vibrato", p.Vibrato),
		attrInt("fretHandMutes", p.FretHandMutes),
		attrInt("slapPop", p.SlapPop),
		attrInt("twoFingerPicking", p.TwoFingerPicking),
		attrInt("fifthsAndOctaves", p.FifthsAndOctaves),
		attrInt("syncopation", p.Syncopation),
		attrInt("bassPick", p.BassPick),
		attrInt("sustain", p.Sustain),
		attrInt("pathLead", p.PathLead),
		attrInt("pathRhythm", p.PathRhythm),
		attrInt("pathBass", p.PathBass),
	)
	b.close("arrangementProperties")
}

func writePhrases(b *builder, song *sng.SongData) {
	b.open("phrases", attrInt("count", len(song.Phrases)))
	for _, p := range song.Phrases {
		attrs := []xmlAttr{
			attrInt("maxDifficulty", int(p.MaxDifficulty)),
			attrStr("name", p.Name),
		}
		if p.Disparity == 1 {
			attrs = append(attrs, attrInt("disparity", 1))
		}
		if p.Ignore == 1 {
			attrs = append(attrs, attrInt("ignore", 1))
		}
		if p.Solo == 1 {
			attrs = append(attrs, attrInt("solo", 1))
		}
		b.openClose("phrase", attrs...)
	}
	b.close("phrases")
}

func writePhraseIterations(b *builder, song *sng.SongData) {
	b.open("phraseIterations", attrInt("count", len(song.PhraseIterations)))
	for _, pi := range song.PhraseIterations {
		hasHero := pi.Difficulty[0] > 0 || pi.Difficulty[1] > 0 || pi.Difficulty[2] > 0
		attrs := []xmlAttr{
			attrFloat3("time", pi.StartTime),
			attrInt("phraseId", int(pi.PhraseID)),
		}
		if !hasHero {
			b.openClose("phraseIteration", attrs...)
			continue
		}
		b.open("phraseIteration", attrs...)
		b.open("heroLevels", attrInt("count", 3))
		for i := 0; i < 3; i++ {
			b.openClose("heroLevel", attrInt("hero", i+1), attrInt("difficulty", int(pi.Difficulty[i])))
		}
		b.close("heroLevels")
		b.close("phraseIteration")
	}
	b.close("phraseIterations")
}

func writeNewLinkedDiffs(b *builder, song *sng.SongData) {
	b.open("newLinkedDiffs", attrInt("count", len(song.NLinkedDifficulties)))
	for _, nld := range song.NLinkedDifficulties {
		b.open("newLinkedDiff",
			attrInt("levelBreak", int(nld.LevelBreak)),
			xmlAttr{"ratio", "1.000"},
			attrInt("phraseCount", len(nld.NldPhrases)),
		)
		for _, id := range nld.NldPhrases {
			b.openClose("nld_phrase", attrInt("id", int(id)))
		}
		b.close("newLinkedDiff")
	}
	b.close("newLinkedDiffs")
}

func writePhraseProperties(b *builder, song *sng.SongData) {
	b.open("phraseProperties", attrInt("count", len(song.PhraseExtraInfos)))
	for _, info := range song.PhraseExtraInfos {
		b.openClose("phraseProperty",
			attrInt("phraseId", int(info.PhraseID)),
			attrInt("redundant", int(info.Redundant)),
			attrInt("levelJump", int(info.LevelJump)),
			attrInt("empty", int(info.Empty)),
			attrInt("difficulty", int(info.Difficulty)),
		)
	}
	b.close("phraseProperties")
}

func writeChordTemplates(b *builder, song *sng.SongData) {
	b.open("chordTemplates", attrInt("count", len(song.Chords)))
	for _, c := range song.Chords {
		displayName := c.Name
		switch c.Mask {
		case 1:
			displayName += "-arp"
		case 2:
			displayName += "-nop"
		}
		attrs := []xmlAttr{
			attrStr("chordName", c.Name),
			attrStr("displayName", displayName),
		}
		for i := 0; i < 6; i++ {
			if c.Fingers[i] != sng.NoFret {
				attrs = append(attrs, attrInt(fingerAttrName(i), int(c.Fingers[i])))
			}
		}
		for i := 0; i < 6; i++ {
			if c.Frets[i] != sng.NoFret {
				attrs = append(attrs, attrInt(fretAttrName(i), int(c.Frets[i])))
			}
		}
		b.openClose("chordTemplate", attrs...)
	}
	b.close("chordTemplates")
}

func fingerAttrName(i int) string { return "finger" + itoa(i) }
func fretAttrName(i int) string   { return "fret" + itoa(i) }

func writeEbeats(b *builder, song *sng.SongData) {
	b.open("ebeats", attrInt("count", len(song.Bpms)))
	for _, bpm := range song.Bpms {
		attrs := []xmlAttr{attrFloat3("time", bpm.Time)}
		if bpm.Mask&0x01 != 0 {
			attrs = append(attrs, attrInt("measure", int(bpm.Measure)))
		}
		b.openClose("ebeat", attrs...)
	}
	b.close("ebeats")
}

func writeTones(b *builder, song *sng.SongData, overlay *manifest.Overlay) {
	if overlay != nil && overlay.ToneBase != nil && *overlay.ToneBase != "" {
		b.textElement("tonebase", *overlay.ToneBase)
	}
	if overlay != nil {
		tags := [4]string{"tonea", "toneb", "tonec", "toned"}
		for i, tag := range tags {
			name := overlay.ToneNames[i]
			if name != nil && *name != "" {
				b.textElement(tag, *name)
			}
		}
	}

	b.open("tones", attrInt("count", len(song.Tones)))
	for _, t := range song.Tones {
		name := "N/A"
		if overlay != nil && t.ToneID >= 0 && t.ToneID < 4 {
			if n := overlay.ToneNames[t.ToneID]; n != nil {
				name = *n
			} else {
				name = ""
			}
		}
		b.openClose("tone",
			attrFloat3("time", t.Time),
			attrInt("id", int(t.ToneID)),
			attrStr("name", name),
		)
	}
	b.close("tones")
}

func writeSections(b *builder, song *sng.SongData) {
	b.open("sections", attrInt("count", len(song.Sections)))
	for _, s := range song.Sections {
		b.openClose("section",
			attrStr("name", s.Name),
			attrInt("number", int(s.Number)),
			attrFloat3("startTime", s.StartTime),
		)
	}
	b.close("sections")
}

func writeEvents(b *builder, song *sng.SongData) {
	b.open("events", attrInt("count", len(song.Events)))
	for _, e := range song.Events {
		b.openClose("event", attrFloat3("time", e.Time), attrStr("code", e.Name))
	}
	b.close("events")
}

func writeEmptyTranscriptionTrack(b *builder) {
	b.open("transcriptionTrack", attrInt("difficulty", -1))
	b.openClose("notes", attrInt("count", 0))
	b.openClose("chords", attrInt("count", 0))
	b.openClose("anchors", attrInt("count", 0))
	b.openClose("handShapes", attrInt("count", 0))
	b.close("transcriptionTrack")
}

func itoa(v int) string {
	return strconv.Itoa(v)
}
