package render

import "github.com/gdamore/tcell/v2"

// ColorTheme defines application colors.
type ColorTheme struct {
	Background  tcell.Color
	Foreground  tcell.Color
	HeaderBg    tcell.Color
	HeaderFg    tcell.Color
	FooterBg    tcell.Color
	FooterFg    tcell.Color
	ModeBg      tcell.Color
	ModeFg      tcell.Color
	ErrorFg     tcell.Color
	FlashBg     tcell.Color
	FlashFg     tcell.Color
	TileBorder  tcell.Color
	CursorFg    tcell.Color
	SelectionBg tcell.Color
	SelectionFg tcell.Color
	RemovedFg   tcell.Color
	SplitFg     tcell.Color
	DropFg      tcell.Color
	PageFg      tcell.Color
	PendingFg   tcell.Color
	CommentFg   tcell.Color
	PaperBg     tcell.Color
	PaperFg     tcell.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		Background:  tcell.ColorDefault,
		Foreground:  tcell.ColorDefault,
		HeaderBg:    tcell.ColorDefault,
		HeaderFg:    tcell.ColorDefault,
		FooterBg:    tcell.ColorDefault,
		FooterFg:    tcell.ColorDefault,
		ModeBg:      tcell.Color214, // amber, same as the cursor
		ModeFg:      tcell.ColorBlack,
		ErrorFg:     tcell.Color203,
		FlashBg:     tcell.ColorGreen,
		FlashFg:     tcell.ColorBlack,
		TileBorder:  tcell.Color244,
		CursorFg:    tcell.Color214,
		SelectionBg: tcell.Color33,
		SelectionFg: tcell.ColorWhite,
		RemovedFg:   tcell.Color240,
		SplitFg:     tcell.Color203,
		DropFg:      tcell.Color46,
		PageFg:      tcell.Color252,
		PendingFg:   tcell.Color238, // geometry not fetched yet
		CommentFg:   tcell.Color51,
		PaperBg:     tcell.Color255,
		PaperFg:     tcell.Color245,
	}
}
