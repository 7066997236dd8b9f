// Package i18n loads the embedded message catalogs and resolves the user's
// locale to one of them.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/pocketvault/pocketvault/pkg/pocketvault/internal"
	"github.com/pocketvault/pocketvault/pkg/pocketvault/theme"
)

// Message IDs shipped in every catalog.
const (
	MsgAppTitle        = "AppTitle"
	MsgThemeModeLight  = "ThemeModeLight"
	MsgThemeModeDark   = "ThemeModeDark"
	MsgThemeCurrent    = "ThemeCurrent"
	MsgThemeSwitched   = "ThemeSwitched"
	MsgThemeSaveFailed = "ThemeSaveFailed"
	MsgErrorUnexpected = "ErrorUnexpected"
)

// BaseLanguage is used when the requested locale has no catalog.
var BaseLanguage = language.English

//go:embed locales/*.toml
var catalogs embed.FS

var (
	bundleOnce sync.Once
	bundle     *goi18n.Bundle
	bundleErr  error
)

// Localizer renders messages for one resolved language.
type Localizer struct {
	tag       language.Tag
	localizer *goi18n.Localizer
}

// Bootstrap resolves locale against the shipped catalogs. locale may be a
// BCP 47 tag ("pt-BR") or a POSIX locale ("es_ES.UTF-8"); empty, malformed or
// unsupported values resolve to BaseLanguage. The only error is a catalog that
// fails to load.
func Bootstrap(locale string) (*Localizer, error) {
	b, err := loadBundle()
	if err != nil {
		return nil, err
	}

	tag := resolve(b, locale)
	internal.GetInternalLogger().Debug("locale resolved", "requested", locale, "tag", tag.String())
	return &Localizer{
		tag:       tag,
		localizer: goi18n.NewLocalizer(b, tag.String()),
	}, nil
}

// SupportedLanguages lists the languages with a shipped catalog.
func SupportedLanguages() ([]language.Tag, error) {
	b, err := loadBundle()
	if err != nil {
		return nil, err
	}
	return b.LanguageTags(), nil
}

// Tag returns the resolved language.
func (l *Localizer) Tag() language.Tag {
	return l.tag
}

// Message renders id with data as template data. Unknown ids render as the
// id itself so a missing translation never blanks a screen.
func (l *Localizer) Message(id string, data map[string]any) string {
	msg, err := l.localizer.Localize(&goi18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		internal.GetInternalLogger().Warn("missing translation", "id", id, "tag", l.tag.String(), "error", err)
		if msg == "" {
			return id
		}
	}
	return msg
}

// ModeLabel returns the display name of a theme mode.
func (l *Localizer) ModeLabel(mode theme.Mode) string {
	if mode == theme.ModeLight {
		return l.Message(MsgThemeModeLight, nil)
	}
	return l.Message(MsgThemeModeDark, nil)
}

func loadBundle() (*goi18n.Bundle, error) {
	bundleOnce.Do(func() {
		b := goi18n.NewBundle(BaseLanguage)
		b.RegisterUnmarshalFunc("toml", toml.Unmarshal)

		paths, err := fs.Glob(catalogs, "locales/*.toml")
		if err != nil {
			bundleErr = fmt.Errorf("i18n: list catalogs: %w", err)
			return
		}
		for _, p := range paths {
			if _, err := b.LoadMessageFileFS(catalogs, p); err != nil {
				bundleErr = fmt.Errorf("i18n: load %s: %w", p, err)
				return
			}
		}
		bundle = b
	})
	return bundle, bundleErr
}

func resolve(b *goi18n.Bundle, locale string) language.Tag {
	normalized := normalizeLocale(locale)
	if normalized == "" {
		return BaseLanguage
	}

	requested, err := language.Parse(normalized)
	if err != nil {
		internal.GetInternalLogger().Warn("ignoring malformed locale", "locale", locale, "error", err)
		return BaseLanguage
	}

	supported := b.LanguageTags()
	_, index, confidence := language.NewMatcher(supported).Match(requested)
	if confidence == language.No {
		return BaseLanguage
	}
	return supported[index]
}

// normalizeLocale turns POSIX locale names into BCP 47 form:
// "es_ES.UTF-8@euro" becomes "es-ES". "C" and "POSIX" mean no preference.
func normalizeLocale(locale string) string {
	l := strings.TrimSpace(locale)
	if i := strings.IndexAny(l, ".@"); i >= 0 {
		l = l[:i]
	}
	if l == "C" || l == "POSIX" {
		return ""
	}
	return strings.ReplaceAll(l, "_", "-")
}
