// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI routes between four views with [resolveView]:
//  1. [AuthView] : login or registration, shown whenever no identity is resolved
//  2. [DiscoverView] : every listing, with like/unlike on listings the user does not own
//  3. [AddView] : the creation form, with sample photo suggestions
//  4. [MineView] : the user's own listings, back-filled with likers as each fetch completes
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Network calls run as commands; likers for the owned listings flow through a channel from [tasks.Owned] and are
// consumed one result per message so that the view updates incrementally.
//
// Keyboard navigation uses tab/shift+tab between views, arrow keys within lists and forms, with contextual help
// displayed via charmbracelet/bubbles/help.
package ui
