package spool

import "github.com/xraph/spool/id"

// ID is the identifier type for queue instances.
type ID = id.ID
