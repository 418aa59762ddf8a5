package booking

import (
	"github.com/roccadavide/beauty-room-sub000/pkg/dbmetrics"
)

// Database executor interfaces shared with dbmetrics so the repository
// works with both the raw pool and the instrumented wrapper.
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor
