// Package ui provides the terminal front end for the showcase site.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model owns the chrome (header, footer, help
// overlay, theme) and one active page:
//
//   - home.go: the scrolling landing page with the hero, the rotating
//     promotion banner, the featured games carousel, latest news and the
//     company footer
//   - list.go: the infinite games or news listing
//   - detail.go: a single item rendered as markdown
//
// # Event Flow
//
//  1. Run starts the program; the first tea.WindowSizeMsg classifies the width
//     and mounts the start page.
//  2. A one second tick polls state.Store, which the app poller refreshes in
//     the background, and pushes new home content into the home page.
//  3. Carousel timers arrive as carousel.TickMsg and carousel.TransitionDoneMsg
//     and are routed to the home page while it is mounted.
//  4. List pages fetch off the event loop and deliver pageLoadedMsg back to the
//     pagination engine that issued the request.
//
// # Scroll Driven State
//
// Each page keeps a visibility.Tracker in page rows. The home page observes
// the card row so the carousel only autoplays while at least half of it is on
// screen; list pages observe a sentinel row under the last item and load the
// next page when it is fully visible. The home page also holds the shared
// backdrop.Backdrop lease while mounted and maps its scroll offset to the
// section colour.
package ui
