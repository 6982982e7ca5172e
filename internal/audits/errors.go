package audits

import "errors"

var ErrNotFound = errors.New("not found")
