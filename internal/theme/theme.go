// Package theme maps Telegram theme parameters onto the palette the admin UI
// renders with. The palette is served from an explicit endpoint; nothing here
// mutates global state.
package theme

import (
	"encoding/json"

	"vitrina/internal/initdata"
)

// Palette is the color set the front end applies. Every field always carries a
// value; unknown or missing platform params fall back to the defaults below.
type Palette struct {
	Background          string `json:"background"`
	Text                string `json:"text"`
	Hint                string `json:"hint"`
	Link                string `json:"link"`
	Button              string `json:"button"`
	ButtonText          string `json:"buttonText"`
	SecondaryBackground string `json:"secondaryBackground"`
}

// Default is the palette used when the payload carries no theme params.
func Default() Palette {
	return Palette{
		Background:          "#ffffff",
		Text:                "#000000",
		Hint:                "#999999",
		Link:                "#2481cc",
		Button:              "#2481cc",
		ButtonText:          "#ffffff",
		SecondaryBackground: "#f1f1f1",
	}
}

// themeParams mirrors the theme_params JSON object of the launch payload.
type themeParams struct {
	BgColor          string `json:"bg_color"`
	TextColor        string `json:"text_color"`
	HintColor        string `json:"hint_color"`
	LinkColor        string `json:"link_color"`
	ButtonColor      string `json:"button_color"`
	ButtonTextColor  string `json:"button_text_color"`
	SecondaryBgColor string `json:"secondary_bg_color"`
}

// FromInitData derives the palette from a verified payload. A nil payload,
// absent theme_params field, or malformed JSON yields the default palette.
func FromInitData(data *initdata.InitData) Palette {
	palette := Default()
	if data == nil {
		return palette
	}

	raw, ok := data.Fields["theme_params"]
	if !ok || raw == "" {
		return palette
	}

	var params themeParams
	if err := json.Unmarshal([]byte(raw), &params); err != nil {
		return palette
	}

	apply := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	apply(&palette.Background, params.BgColor)
	apply(&palette.Text, params.TextColor)
	apply(&palette.Hint, params.HintColor)
	apply(&palette.Link, params.LinkColor)
	apply(&palette.Button, params.ButtonColor)
	apply(&palette.ButtonText, params.ButtonTextColor)
	apply(&palette.SecondaryBackground, params.SecondaryBgColor)
	return palette
}
