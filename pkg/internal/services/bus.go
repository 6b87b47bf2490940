package services

import "github.com/backchannel-im/backchannel/pkg/internal/stream"

// Bus carries change notifications from every write in this package to the
// directories and feeds that re-emit collections off it.
var Bus = stream.NewBus()
