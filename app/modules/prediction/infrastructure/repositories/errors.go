package predictiondb

import "errors"

// ErrCorruptDocument indicates the prediction document exists but is not a JSON array.
var ErrCorruptDocument = errors.New("corrupt prediction document")
