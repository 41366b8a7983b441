// Package res holds static resources shown by the UI.
package res

// AboutContent contains the Markdown content for the About dialog.
// This is maintained separately for easy updates.
const AboutContent = `Audio spectrum bars with particles rising from them, built with Go and Fyne.

**Keys:**
- **O** toggles the compact overlay mode
- **F** or a double click toggles full screen
- **Esc** leaves full screen

**Settings** live in the application preferences, or in a TOML file
passed with ` + "`-settings`" + `. Use File > Export to start from the current values.
`
