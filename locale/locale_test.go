package locale

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidate(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"AppResources.de-DE.resx", "de-DE"},
		{"res/AppResources.ru.resx", "ru"},
		{"Strings/de-DE/Resources.resw", "de-DE"},
		{`en\Resources.resw`, "en"},
		{`C:\src\App\fr-FR\Resources.resjson`, "fr-FR"},
		{"fr-FR/Foo.de-DE.resw", "de-DE"},
		{"Resources.resw", ""},
		{"/Resources.resw", ""},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Candidate(tc.path), "Candidate(%q)", tc.path)
	}
}

func TestResolve(t *testing.T) {
	tag, err := Resolve("AppResources.de-DE.resx")
	require.NoError(t, err)
	assert.Equal(t, "de-DE", tag.String())

	tag, err = Resolve(`en\Resources.resw`)
	require.NoError(t, err)
	assert.Equal(t, "en", tag.String())
}

func TestResolveIndependentOfExtension(t *testing.T) {
	a, err := Resolve("Foo.de-DE.resx")
	require.NoError(t, err)
	b, err := Resolve("Foo.de-DE.resjson")
	require.NoError(t, err)
	c, err := Resolve("de-DE/Foo.resw")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, a, c)
	assert.Equal(t, a.String(), c.String())
}

func TestResolveCanonicalizes(t *testing.T) {
	tag, err := Resolve("AppResources.pt-br.resx")
	require.NoError(t, err)
	assert.Equal(t, "pt-BR", tag.String())
}

func TestResolveIsDeterministic(t *testing.T) {
	first, err := Resolve("Strings/zh-Hant/Resources.resw")
	require.NoError(t, err)
	second, err := Resolve("Strings/zh-Hant/Resources.resw")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		candidate string
	}{
		{"no candidate", "Resources.resw", ""},
		{"bad file segment", "Foo.notalocale.resx", "notalocale"},
		{"bad directory", "Strings/Resources/App.resw", "Resources"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Resolve(tc.path)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrResolution))

			var rerr *ResolutionError
			require.True(t, errors.As(err, &rerr))
			assert.Equal(t, tc.path, rerr.Path)
			assert.Equal(t, tc.candidate, rerr.Candidate)
		})
	}
}

func TestParse(t *testing.T) {
	tag, err := Parse("en-us")
	require.NoError(t, err)
	assert.Equal(t, "en-US", tag.String())

	_, err = Parse("not a locale")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrResolution))
}

func TestFromDirectory(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"AppResources.de-DE.resx", false},
		{"de-DE/AppResources.fr.resx", false},
		{"Strings/de-DE/Resources.resw", true},
		{`src\Resources.resw`, true},
		{"Resources.resw", false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, FromDirectory(tc.path), "FromDirectory(%q)", tc.path)
	}
}
