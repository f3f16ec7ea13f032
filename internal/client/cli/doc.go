// Package cli is the interactive Farmily shell.
//
// On start it asks the gate resolver which screen to show. Remote content is
// rendered as a full-width frame holding the content URL. The one-time
// language prompt is a numbered picker. Everything else is the native herd
// REPL, which re-checks the resolver before every prompt so a late gate
// result still switches the shell to remote content.
//
// Commands in the native REPL:
//   - add, edit, delete      manage animal records
//   - list | l, show, stats  browse the herd
//   - theme, language        preferences
//   - settings, reset        inspect stored settings, forget preferences
//   - backup, restore        S3 export and import
//   - help, exit | quit
//
// The shell is started via App.Run(ctx), which blocks until the user exits.
package cli
