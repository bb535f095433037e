// Package ui implements the interactive console menu using bubbletea's Elm architecture.
//
// The menu offers the six catalog actions:
//  1. Add book: a form of text inputs (title, author, year, genre, read)
//  2. Remove a book: deletes every book whose title matches exactly, ignoring case
//  3. Search: by title or author, substring match
//  4. Display all: a filterable list of every book
//  5. Statistics: total count and read percentage
//  6. Exit
//
// The [Model] implements bubbletea's Init/Update/View pattern. Catalog calls run as [tea.Cmd] functions and report
// back through the [Msg] union type, so the view never blocks on storage.
package ui
