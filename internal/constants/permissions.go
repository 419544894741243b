package constants

const (
	RecordContribution = "record_contribution"
	RecordPenalty      = "record_penalty"
	RecordInvestment   = "record_investment"
	RecordAsset        = "record_asset"
	RecordBuyOut       = "record_buy_out"
	ManageExitQueue    = "manage_exit_queue"
	CreateReversal     = "create_reversal"
	ManageMembers      = "manage_members"
	ManageWindows      = "manage_windows"
	ViewExitQueue      = "view_exit_queue"
	ViewOwnData        = "view_own_data"
	ViewAggregates     = "view_aggregates"
)
