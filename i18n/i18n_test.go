package i18n

import (
	"io/fs"
	"strings"
	"testing"
)

func clearLocaleEnv(t *testing.T) {
	t.Helper()
	t.Setenv("LANGUAGE", "")
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "")
}

func TestDetectLanguagePriorityAndNormalization(t *testing.T) {
	t.Run("LANGUAGE has highest priority", func(t *testing.T) {
		clearLocaleEnv(t)
		t.Setenv("LANGUAGE", "ru_RU.UTF-8:en_US")
		t.Setenv("LC_ALL", "de_DE.UTF-8")

		if got := detectLanguage(); got != "ru_RU" {
			t.Fatalf("detectLanguage() = %q, want %q", got, "ru_RU")
		}
	})

	t.Run("C and POSIX are skipped", func(t *testing.T) {
		clearLocaleEnv(t)
		t.Setenv("LANGUAGE", "C")
		t.Setenv("LC_ALL", "POSIX")
		t.Setenv("LC_MESSAGES", "fr_FR.UTF-8")

		if got := detectLanguage(); got != "fr_FR" {
			t.Fatalf("detectLanguage() = %q, want %q", got, "fr_FR")
		}
	})

	t.Run("falls back to en", func(t *testing.T) {
		clearLocaleEnv(t)
		if got := detectLanguage(); got != "en" {
			t.Fatalf("detectLanguage() = %q, want %q", got, "en")
		}
	})
}

func TestTAndNFallbackWhenUninitialized(t *testing.T) {
	old := po
	po = nil
	t.Cleanup(func() { po = old })

	if got := T("Hello"); got != "Hello" {
		t.Fatalf("T fallback = %q, want %q", got, "Hello")
	}

	if got := N("file", "files", 1); got != "file" {
		t.Fatalf("N singular fallback = %q, want %q", got, "file")
	}

	if got := N("file", "files", 2); got != "files" {
		t.Fatalf("N plural fallback = %q, want %q", got, "files")
	}
}

func TestEmbeddedCatalogs(t *testing.T) {
	old := po
	t.Cleanup(func() { po = old })

	Init("de")
	if got := T("Resulting XLF files:"); got != "Erzeugte XLF-Dateien:" {
		t.Fatalf("T(de) = %q", got)
	}
	if got := T("not in any catalog"); got != "not in any catalog" {
		t.Fatalf("T passthrough = %q", got)
	}

	Init("ru")
	if got := T("Invalid number of arguments"); got != "Неверное количество аргументов" {
		t.Fatalf("T(ru) = %q", got)
	}
	got := N("%s: %d resource has no translation in %s", "%s: %d resources have no translation in %s", 5)
	if got != "%s: %d ресурсов не переведены в %s" {
		t.Fatalf("N(ru, 5) = %q", got)
	}
}

func TestLanguages(t *testing.T) {
	got := strings.Join(Languages(), ",")
	if got != "de,ru" {
		t.Fatalf("Languages() = %q, want %q", got, "de,ru")
	}
}

func catalogPath(lang string) string {
	return "locales/" + lang + "/LC_MESSAGES/" + domain + ".po"
}

// msgids returns the msgid and msgid_plural strings of an embedded catalog.
func msgids(t *testing.T, lang string) map[string]bool {
	t.Helper()
	data, err := fs.ReadFile(locales, catalogPath(lang))
	if err != nil {
		t.Fatalf("reading %s catalog: %v", lang, err)
	}
	ids := make(map[string]bool)
	for _, line := range strings.Split(string(data), "\n") {
		for _, prefix := range []string{`msgid "`, `msgid_plural "`} {
			if id, ok := strings.CutPrefix(line, prefix); ok && id != `"` {
				ids[strings.TrimSuffix(id, `"`)] = true
			}
		}
	}
	return ids
}

func TestCatalogsCoverSameMessages(t *testing.T) {
	langs := Languages()
	want := msgids(t, langs[0])
	if len(want) == 0 {
		t.Fatalf("%s catalog has no messages", langs[0])
	}
	for _, lang := range langs[1:] {
		got := msgids(t, lang)
		for id := range want {
			if !got[id] {
				t.Errorf("%s catalog is missing %q", lang, id)
			}
		}
		for id := range got {
			if !want[id] {
				t.Errorf("%s catalog has extra %q", lang, id)
			}
		}
	}
}

func TestLogMessagesTranslated(t *testing.T) {
	old := po
	t.Cleanup(func() { po = old })

	Init("de")
	if got := T("Report written to %s"); got != "Bericht nach %s geschrieben" {
		t.Fatalf("T(de) = %q", got)
	}
	if got := N("Loaded %d resource from %s (%s)", "Loaded %d resources from %s (%s)", 2); got != "%d Ressourcen aus %s geladen (%s)" {
		t.Fatalf("N(de, 2) = %q", got)
	}
}
