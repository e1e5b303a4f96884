package triplogs

import "errors"

var ErrLogNotFound = errors.New("trip log not found")
