package repo

import "errors"

var ErrBadPayload = errors.New("bad order payload")

const (
	defaultSnapshotLimit = 1000
	maxSnapshotLimit     = 100000
)
