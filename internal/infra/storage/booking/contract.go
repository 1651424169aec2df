package booking

import "github.com/m04kA/SMC-ShopBooking/pkg/dbmetrics"

// DBExecutor *sql.DB, транзакция из контекста или обёртка с метриками
type DBExecutor = dbmetrics.DBExecutor
