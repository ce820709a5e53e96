// Package ui contains the interaction controller that turns a menu tree into
// a popup and reports how it ended.
//
// Event flow:
//   - The host pumps platform events into Controller.HandleEvent on its UI
//     goroutine. HandleEvent routes each event through a typed handler
//     registry so every event kind is handled by a focused function
//     (pointer handling in input.go, keyboard navigation in navigation.go).
//   - Hover timers are not goroutines. The controller records a deadline
//     that hosts read through NextDeadline and answer with a Tick event.
//
// State ownership:
//   - Each open menu window is a state.Level (items, geometry, screen
//     bounds, highlight, type-ahead query) paired with its platform overlay.
//     The stack of windows runs from the root to the innermost submenu.
//   - Activation side effects on checkbox and radio items go through the
//     command bus so they are applied exactly once, just before the
//     terminal event is published.
//
// Results:
//   - PopupAt returns a menuevent.Receiver for hosts that poll, PopupAtAsync
//     a menuevent.Handle for goroutines that wait; Handle.Receiver adds a
//     poller to an async invocation. All of them observe the single
//     Selected or Cancelled event of the invocation.
package ui
