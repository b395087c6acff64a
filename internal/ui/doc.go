// Package ui provides semantic terminal formatting for koru output.
//
// Formatters pair a color with a plain-text fallback so output stays
// readable when color is unavailable. Color is disabled when NO_COLOR
// is set or when fatih/color detects a non-terminal.
//
// # Usage
//
//	fmt.Println(ui.Success.Sprint("✓") + " Saved " + ui.Highlight.Sprint("llm/groq"))
//	fmt.Println(ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("koru profile list llm"))
package ui
