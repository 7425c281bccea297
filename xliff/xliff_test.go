package xliff

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func sampleDocument() *Document {
	d := New()
	d.Files = []*File{
		{
			Original:       "AppResources.resx",
			SourceLanguage: "en-US",
			TargetLanguage: "en-US",
			Datatype:       "resx",
			Header:         &Header{Tool: &Tool{ID: "res2xlf", Name: "res2xlf"}},
			Body: Body{Groups: []*Group{
				{
					ID:       "AppResources.resx",
					Datatype: "resx",
					Units: []*Unit{
						{ID: "Greeting", Translate: "yes", Space: "preserve", Source: "Hello", Target: Target{State: StateNew, Text: "Hello"}},
						{ID: "Farewell", Translate: "yes", Space: "preserve", Source: "Bye & <later>", Target: Target{State: StateNew, Text: "Bye & <later>"},
							Notes: []Note{{From: NoteFromBuild, Annotates: "source", Priority: 2, Content: "said when leaving"}}},
					},
				},
				{
					ID:    "Menu",
					Units: []*Unit{{ID: "Greeting", Source: "Hi", Target: Target{State: StateNew, Text: "Hi"}}},
				},
			}},
		},
	}
	return d
}

func TestUnitsDocumentOrder(t *testing.T) {
	d := sampleDocument()

	var ids []string
	for u := range d.Units() {
		ids = append(ids, u.ID+"="+u.Source)
	}
	assert.Equal(t, []string{"Greeting=Hello", "Farewell=Bye & <later>", "Greeting=Hi"}, ids)
	assert.Equal(t, 3, d.Count())
}

func TestUnitsStopsEarly(t *testing.T) {
	d := sampleDocument()

	seen := 0
	for range d.Units() {
		seen++
		break
	}
	assert.Equal(t, 1, seen)
}

func TestSetTargetLanguage(t *testing.T) {
	d := sampleDocument()
	d.Files = append(d.Files, &File{Original: "Other.resx", SourceLanguage: "en-US"})

	d.SetTargetLanguage(language.MustParse("de-de"))

	for _, f := range d.Files {
		assert.Equal(t, "de-DE", f.TargetLanguage)
	}
}

func TestCountStates(t *testing.T) {
	d := sampleDocument()
	d.Files[0].Body.Groups[0].Units[0].Target.State = StateTranslated

	counts := d.CountStates()
	assert.Equal(t, 2, counts[StateNew])
	assert.Equal(t, 1, counts[StateTranslated])
}

func TestMarshalLayout(t *testing.T) {
	data, err := sampleDocument().Marshal()
	require.NoError(t, err)
	out := string(data)

	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, out, `<xliff xmlns="urn:oasis:names:tc:xliff:document:1.2" version="1.2">`)
	assert.Contains(t, out, `<file original="AppResources.resx" source-language="en-US" target-language="en-US" datatype="resx">`)
	assert.Contains(t, out, `<trans-unit id="Greeting" translate="yes" xml:space="preserve">`)
	assert.Contains(t, out, `<source>Bye &amp; &lt;later&gt;</source>`)
	assert.Contains(t, out, `<target state="new">Hello</target>`)
	assert.Contains(t, out, `<note from="MultilingualBuild" annotates="source" priority="2">said when leaving</note>`)
}

func TestMarshalDeterministic(t *testing.T) {
	first, err := sampleDocument().Marshal()
	require.NoError(t, err)
	second, err := sampleDocument().Marshal()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestWriteAndParseRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "AppResources.de-DE.xlf")
	orig := sampleDocument()
	require.NoError(t, orig.WriteFile(path))

	got, err := ParseFile(path)
	require.NoError(t, err)

	require.Len(t, got.Files, 1)
	f := got.Files[0]
	assert.Equal(t, "AppResources.resx", f.Original)
	assert.Equal(t, "en-US", f.SourceLanguage)
	require.NotNil(t, f.Header)
	assert.Equal(t, "res2xlf", f.Header.Tool.ID)
	require.Len(t, f.Body.Groups, 2)

	u := f.Body.Groups[0].Units[1]
	assert.Equal(t, "Farewell", u.ID)
	assert.Equal(t, "preserve", u.Space)
	assert.Equal(t, "Bye & <later>", u.Source)
	assert.Equal(t, StateNew, u.Target.State)
	require.Len(t, u.Notes, 1)
	assert.Equal(t, "said when leaving", u.Notes[0].Content)
	assert.Equal(t, 2, u.Notes[0].Priority)

	again, err := got.Marshal()
	require.NoError(t, err)
	want, err := orig.Marshal()
	require.NoError(t, err)
	assert.Equal(t, string(want), string(again))
}

func TestParseRejectsOtherVersions(t *testing.T) {
	_, err := Parse([]byte(`<xliff xmlns="urn:oasis:names:tc:xliff:document:1.2" version="2.0"></xliff>`))
	require.Error(t, err)
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "missing.xlf"))
	require.Error(t, err)
}
