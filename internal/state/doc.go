// Package state shares home page content between the background refresher
// and the UI.
//
// The refresher is the single writer; the UI reads a fresh Snapshot on every
// refresh tick. A failed refresh keeps the previous content and records the
// error, so the UI can keep rendering the last good data with an offline
// indicator:
//
//	// Success: replace content
//	store.Update(&content, nil)
//
//	// Failure: keep content, record error
//	store.Update(nil, err)
//
// Snapshots are deep enough copies that the UI may sort or slice them freely.
// The zero Store is ready to use.
package state
