package play

import (
	"github.com/abhisek/triviaz/internal/session"
)

// sessionStartedMsg carries a newly built session or the fetch error.
type sessionStartedMsg struct {
	sess *session.Session
	err  error
}

// sessionFinishedMsg carries the result once used IDs have been reported.
type sessionFinishedMsg struct {
	res session.Result
}
