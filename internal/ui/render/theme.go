package render

import "github.com/gdamore/tcell/v2"

// ColorTheme defines application colors.
type ColorTheme struct {
	Background      tcell.Color
	Foreground      tcell.Color
	HiddenFg        tcell.Color
	SelectionBg     tcell.Color
	SelectionFg     tcell.Color
	InactiveSelBg   tcell.Color
	DirectoryFg     tcell.Color
	DriveFg         tcell.Color
	SymlinkFg       tcell.Color
	FileFg          tcell.Color
	MetaFg          tcell.Color
	MatchFg         tcell.Color
	HeaderBg        tcell.Color
	HeaderFg        tcell.Color
	TabActiveBg     tcell.Color
	TabActiveFg     tcell.Color
	TabInactiveFg   tcell.Color
	CrumbFg         tcell.Color
	FooterBg        tcell.Color
	FooterFg        tcell.Color
	ErrorFg         tcell.Color
	NoticeBg        tcell.Color
	NoticeFg        tcell.Color
	DemoBg          tcell.Color
	DemoFg          tcell.Color
	SeparatorFg     tcell.Color
	PlaceholderFg   tcell.Color
	ConfirmBg       tcell.Color
	ConfirmFg       tcell.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		Background:    tcell.ColorDefault,
		Foreground:    tcell.ColorDefault,
		HiddenFg:      tcell.ColorLightSlateGray,
		SelectionBg:   tcell.Color33,
		SelectionFg:   tcell.ColorWhite,
		InactiveSelBg: tcell.Color238, // selection in the unfocused pane
		DirectoryFg:   tcell.Color33,
		DriveFg:       tcell.Color214,
		SymlinkFg:     tcell.Color51,
		FileFg:        tcell.ColorDefault,
		MetaFg:        tcell.Color245,
		MatchFg:       tcell.Color214,
		HeaderBg:      tcell.ColorDefault,
		HeaderFg:      tcell.ColorDefault,
		TabActiveBg:   tcell.Color33,
		TabActiveFg:   tcell.ColorWhite,
		TabInactiveFg: tcell.Color245,
		CrumbFg:       tcell.ColorDefault,
		FooterBg:      tcell.ColorDefault,
		FooterFg:      tcell.ColorDefault,
		ErrorFg:       tcell.ColorRed,
		NoticeBg:      tcell.Color52,
		NoticeFg:      tcell.ColorWhite,
		DemoBg:        tcell.Color94,
		DemoFg:        tcell.ColorWhite,
		SeparatorFg:   tcell.Color240,
		PlaceholderFg: tcell.Color245,
		ConfirmBg:     tcell.Color130,
		ConfirmFg:     tcell.ColorWhite,
	}
}
