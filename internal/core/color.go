package core

// Color is a cell's foreground. The terminal host maps it to an ANSI
// 256-color code.
type Color uint8

const (
	ColorDefault      Color = iota
	ColorRed                // enemy body
	ColorWhite              // platform tops
	ColorGray               // platform fill, background stars, secondary HUD text
	ColorBrightRed          // enemy heads, hearts
	ColorBrightYellow       // coins, titles
	ColorBrightCyan         // player
	ColorBrightWhite        // HUD
)
