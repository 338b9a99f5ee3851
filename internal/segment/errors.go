package segment

import "errors"

var ErrInvalidArgument = errors.New("offset and length cannot be negative")
var ErrRequestTimeout = errors.New("range request exceeded deadline")
var ErrRemote = errors.New("segment store request failed")
var ErrStalledRead = errors.New("range request returned zero bytes with data still expected")
