// Package ui implements an interactive terminal menu using bubbletea's Elm architecture.
//
// The TUI provides a three-view workflow for catalog management:
//  1. [MenuView] : Browse the available catalog operations
//  2. [FormView] : Fill in the fields the selected operation needs
//  3. [ResultView] : Display the operation outcome or its error
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Every operation runs against a [services.Catalog]; failures render in the
// result view and return control to the menu, so a rejected query or an
// unreachable database never tears the program down.
//
// Keyboard navigation uses vim-style bindings in the menu (j/k, enter, esc, q)
// and tab/shift+tab between form fields, with contextual help displayed via
// charmbracelet/bubbles/help.
package ui
