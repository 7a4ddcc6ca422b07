package model

// AllModels lists every model the schema is migrated from.
func AllModels() []interface{} {
	return []interface{}{
		&ProjectModel{},
		&InstallmentModel{},
		&TransactionModel{},
		&TimelineEventModel{},
		&AlertQueueModel{},
	}
}
