package config

import "github.com/gdamore/tcell/v2"

type ColorScheme struct {
	Name        string
	Background  tcell.Color
	Foreground  tcell.Color
	Selection   tcell.Color
	StatusBarBg tcell.Color
	StatusBarFg tcell.Color
	PromptBg    tcell.Color
	PromptFg    tcell.Color
	PopupBg     tcell.Color
	Error       tcell.Color

	Keyword   tcell.Color
	Comment   tcell.Color
	String    tcell.Color
	Number    tcell.Color
	Tag       tcell.Color
	Attribute tcell.Color
	Function  tcell.Color
	Type      tcell.Color
}

var Themes = map[string]*ColorScheme{
	"dark": {
		Name:        "Dark",
		Background:  tcell.ColorBlack,
		Foreground:  tcell.ColorWhite,
		Selection:   tcell.ColorDarkBlue,
		StatusBarBg: tcell.ColorDarkBlue,
		StatusBarFg: tcell.ColorWhite,
		PromptBg:    tcell.ColorBlack,
		PromptFg:    tcell.ColorYellow,
		PopupBg:     tcell.ColorDimGray,
		Error:       tcell.ColorRed,
		Keyword:     tcell.ColorBlue,
		Comment:     tcell.ColorGreen,
		String:      tcell.ColorOrange,
		Number:      tcell.ColorPurple,
		Tag:         tcell.ColorTeal,
		Attribute:   tcell.ColorYellow,
		Function:    tcell.ColorAqua,
		Type:        tcell.ColorFuchsia,
	},
	"light": {
		Name:        "Light",
		Background:  tcell.ColorWhite,
		Foreground:  tcell.ColorBlack,
		Selection:   tcell.ColorLightBlue,
		StatusBarBg: tcell.ColorLightBlue,
		StatusBarFg: tcell.ColorBlack,
		PromptBg:    tcell.ColorWhite,
		PromptFg:    tcell.ColorNavy,
		PopupBg:     tcell.ColorLightGray,
		Error:       tcell.ColorMaroon,
		Keyword:     tcell.ColorNavy,
		Comment:     tcell.ColorGray,
		String:      tcell.ColorGreen,
		Number:      tcell.ColorPurple,
		Tag:         tcell.ColorTeal,
		Attribute:   tcell.ColorOlive,
		Function:    tcell.ColorBlue,
		Type:        tcell.ColorMaroon,
	},
	"monokai": {
		Name:        "Monokai",
		Background:  tcell.NewRGBColor(39, 40, 34),
		Foreground:  tcell.NewRGBColor(248, 248, 242),
		Selection:   tcell.NewRGBColor(73, 72, 62),
		StatusBarBg: tcell.NewRGBColor(73, 72, 62),
		StatusBarFg: tcell.NewRGBColor(248, 248, 242),
		PromptBg:    tcell.NewRGBColor(39, 40, 34),
		PromptFg:    tcell.NewRGBColor(230, 219, 116),
		PopupBg:     tcell.NewRGBColor(62, 61, 50),
		Error:       tcell.NewRGBColor(249, 38, 114),
		Keyword:     tcell.NewRGBColor(249, 38, 114),
		Comment:     tcell.NewRGBColor(117, 113, 94),
		String:      tcell.NewRGBColor(230, 219, 116),
		Number:      tcell.NewRGBColor(174, 129, 255),
		Tag:         tcell.NewRGBColor(249, 38, 115),
		Attribute:   tcell.NewRGBColor(166, 226, 46),
		Function:    tcell.NewRGBColor(166, 226, 47),
		Type:        tcell.NewRGBColor(102, 217, 239),
	},
	"nord": {
		Name:        "Nord",
		Background:  tcell.NewRGBColor(46, 52, 64),
		Foreground:  tcell.NewRGBColor(236, 239, 244),
		Selection:   tcell.NewRGBColor(67, 76, 94),
		StatusBarBg: tcell.NewRGBColor(67, 76, 94),
		StatusBarFg: tcell.NewRGBColor(236, 239, 244),
		PromptBg:    tcell.NewRGBColor(46, 52, 64),
		PromptFg:    tcell.NewRGBColor(136, 192, 208),
		PopupBg:     tcell.NewRGBColor(59, 66, 82),
		Error:       tcell.NewRGBColor(191, 97, 106),
		Keyword:     tcell.NewRGBColor(129, 161, 193),
		Comment:     tcell.NewRGBColor(97, 110, 136),
		String:      tcell.NewRGBColor(163, 190, 140),
		Number:      tcell.NewRGBColor(180, 142, 173),
		Tag:         tcell.NewRGBColor(129, 161, 194),
		Attribute:   tcell.NewRGBColor(143, 188, 187),
		Function:    tcell.NewRGBColor(136, 192, 208),
		Type:        tcell.NewRGBColor(235, 203, 139),
	},
	"dracula": {
		Name:        "Dracula",
		Background:  tcell.NewRGBColor(40, 42, 54),
		Foreground:  tcell.NewRGBColor(248, 248, 242),
		Selection:   tcell.NewRGBColor(68, 71, 90),
		StatusBarBg: tcell.NewRGBColor(68, 71, 90),
		StatusBarFg: tcell.NewRGBColor(248, 248, 242),
		PromptBg:    tcell.NewRGBColor(40, 42, 54),
		PromptFg:    tcell.NewRGBColor(241, 250, 140),
		PopupBg:     tcell.NewRGBColor(55, 58, 75),
		Error:       tcell.NewRGBColor(255, 85, 85),
		Keyword:     tcell.NewRGBColor(255, 121, 198),
		Comment:     tcell.NewRGBColor(98, 114, 164),
		String:      tcell.NewRGBColor(241, 250, 140),
		Number:      tcell.NewRGBColor(189, 147, 249),
		Tag:         tcell.NewRGBColor(255, 121, 199),
		Attribute:   tcell.NewRGBColor(80, 250, 123),
		Function:    tcell.NewRGBColor(80, 250, 124),
		Type:        tcell.NewRGBColor(139, 233, 253),
	},
}
