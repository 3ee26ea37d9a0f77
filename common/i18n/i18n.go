package i18n

import (
	"embed"
	"maps"

	"github.com/goccy/go-yaml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/krau/download-manager/common/i18n/i18nk"
)

//go:embed locale/*
var localesFS embed.FS

var (
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
)

const DefaultLang = "en"

func Init(lang string) {
	bundle = i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)
	files, err := localesFS.ReadDir("locale")
	if err != nil {
		panic("failed to read locale directory: " + err.Error())
	}
	for _, file := range files {
		if _, err := bundle.LoadMessageFileFS(localesFS, "locale/"+file.Name()); err != nil {
			panic("failed to load message file: " + err.Error())
		}
	}
	if lang == "" {
		lang = DefaultLang
	}
	localizer = i18n.NewLocalizer(bundle, lang, DefaultLang)
}

// T localizes key. Unknown keys are returned as is.
func T(key i18nk.Key, templateData ...map[string]any) string {
	if localizer == nil || bundle == nil {
		Init(DefaultLang)
	}
	templateDataMap := make(map[string]any)
	for _, data := range templateData {
		maps.Copy(templateDataMap, data)
	}
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    string(key),
		TemplateData: templateDataMap,
	})
	if err != nil {
		return string(key)
	}
	return msg
}
