package domain

// Table is a mongo collection name
type Table string

const (
	TableOfferings          Table = "offerings"
	TableBidOfferings       Table = "bid_offerings"
	TableContractItems      Table = "contract_items"
	TableSettlementMessages Table = "settlement_messages"
	TableDeposits           Table = "deposits"
	TableTrackerStates      Table = "tracker_states"
)
