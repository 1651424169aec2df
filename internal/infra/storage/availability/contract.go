package availability

import "github.com/m04kA/SMC-ShopBooking/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
