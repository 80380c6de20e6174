package manifest

import "testing"

func strPtrEq(t *testing.T, got *string, want string, field string) {
	t.Helper()
	if got == nil {
		t.Fatalf("%s = nil; expected %q", field, want)
	}
	if *got != want {
		t.Errorf("%s = %q; expected %q", field, *got, want)
	}
}

func TestParsePascalCaseKeys(t *testing.T) {
	doc := []byte(`{
		"Entries": {
			"abc123": {
				"Attributes": {
					"SongName": "Test Song",
					"ArtistName": "Test Artist",
					"SongYear": 2012,
					"SongAverageTempo": 120.5,
					"ArrangementProperties": {
						"BarreChords": 1,
						"Bends": 0
					}
				}
			}
		}
	}`)

	o, err := Parse(doc)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	strPtrEq(t, o.Title, "Test Song", "Title")
	strPtrEq(t, o.ArtistName, "Test Artist", "ArtistName")
	if o.AlbumYear == nil || *o.AlbumYear != 2012 {
		t.Errorf("AlbumYear = %v; expected 2012", o.AlbumYear)
	}
	if o.AverageTempo == nil || *o.AverageTempo != 120.5 {
		t.Errorf("AverageTempo = %v; expected 120.5", o.AverageTempo)
	}
	if o.ArrangementProperties == nil {
		t.Fatalf("ArrangementProperties = nil")
	}
	if o.ArrangementProperties.BarreChords != 1 {
		t.Errorf("BarreChords = %d; expected 1", o.ArrangementProperties.BarreChords)
	}
}

func TestParseCamelCaseKeys(t *testing.T) {
	doc := []byte(`{
		"entries": {
			"abc123": {
				"attributes": {
					"songName": "Camel Song",
					"artistName": "Camel Artist",
					"arrangementProperties": {
						"barreChords": 1
					}
				}
			}
		}
	}`)

	o, err := Parse(doc)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	strPtrEq(t, o.Title, "Camel Song", "Title")
	strPtrEq(t, o.ArtistName, "Camel Artist", "ArtistName")
	if o.ArrangementProperties == nil || o.ArrangementProperties.BarreChords != 1 {
		t.Fatalf("expected BarreChords = 1, got %+v", o.ArrangementProperties)
	}
}

func TestParseMissingFieldsDefaultToNil(t *testing.T) {
	doc := []byte(`{"Entries": {"x": {"Attributes": {"SongName": "Only Title"}}}}`)
	o, err := Parse(doc)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	strPtrEq(t, o.Title, "Only Title", "Title")
	if o.ArtistName != nil {
		t.Errorf("ArtistName = %v; expected nil", o.ArtistName)
	}
	if o.ArrangementProperties != nil {
		t.Errorf("ArrangementProperties = %v; expected nil", o.ArrangementProperties)
	}
}

func TestParseMalformedJSONReturnsEmptyOverlay(t *testing.T) {
	o, err := Parse([]byte(`not json at all`))
	if err != nil {
		t.Fatalf("Parse returned error for malformed input: %v", err)
	}
	if o.Title != nil {
		t.Errorf("expected empty overlay, got Title = %v", o.Title)
	}
}

func TestParseStripsUTF8BOM(t *testing.T) {
	doc := append([]byte(utf8BOM), []byte(`{"Entries":{"x":{"Attributes":{"SongName":"BOM Song"}}}}`)...)
	o, err := Parse(doc)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	strPtrEq(t, o.Title, "BOM Song", "Title")
}

func TestParseToneNames(t *testing.T) {
	doc := []byte(`{"Entries":{"x":{"Attributes":{
		"Tone_Base": "base_tone",
		"Tone_A": "tone_a",
		"Tone_C": "tone_c"
	}}}}`)
	o, err := Parse(doc)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	strPtrEq(t, o.ToneBase, "base_tone", "ToneBase")
	strPtrEq(t, o.ToneNames[0], "tone_a", "ToneNames[0]")
	if o.ToneNames[1] != nil {
		t.Errorf("ToneNames[1] = %v; expected nil", o.ToneNames[1])
	}
	strPtrEq(t, o.ToneNames[2], "tone_c", "ToneNames[2]")
}
