// Package store holds the client-side state containers backing the console
// views: one for the auth session, one for the working set of accounts.
//
// Every action follows the same envelope: mark loading, clear the last
// error, perform one gateway call, record a display message on failure and
// re-return the original error, and always clear the loading flag on exit.
package store

// errorMessage derives the display string recorded for a failed action.
// The gateway errors already carry the server-supplied message when one
// was present; the fallback covers errors with no message at all.
func errorMessage(err error, fallback string) string {
	if err == nil || err.Error() == "" {
		return fallback
	}
	return err.Error()
}
