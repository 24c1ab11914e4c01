package domain

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Ledger provenance sources.
const (
	SourceTask      = "task"
	SourceRaffle    = "raffle"
	SourceClaimCode = "claim_code"
	SourceTip       = "tip"
	SourceChat      = "chat_activity"
	SourceAdmin     = "admin"
)

// Ledger entry status.
const (
	LedgerSuccess  = "success"
	LedgerPending  = "pending"
	LedgerRejected = "rejected"
)

const (
	TaskActive   = "active"
	TaskInactive = "inactive"
)

const (
	TaskTypeManual    = "manual"
	TaskTypeLinkClick = "link_click"
)

const (
	CompletionPending  = "pending"
	CompletionApproved = "approved"
	CompletionRejected = "rejected"
)

const (
	RaffleActive = "active"
	RaffleDrawn  = "drawn"
)

const (
	CodeActive   = "active"
	CodeInactive = "inactive"
)

const (
	StreamActive   = "active"
	StreamFinished = "finished"
)

// Wallet currencies created for every user. Wallets are tracked separately
// from points; there is no conversion path between the two.
var WalletCurrencies = []string{"IDR", "USDT"}
