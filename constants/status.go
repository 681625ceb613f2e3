package constants

// TxStatus is the canonical life-cycle status for a sale transaction.
type TxStatus string

// Stable values (store these exact strings in DB).
const (
	TxStatusPending   TxStatus = "pending"   // priced, awaiting confirm/cancel
	TxStatusCompleted TxStatus = "completed" // confirmed, stock decremented
	TxStatusCancelled TxStatus = "cancelled" // terminal, no stock effect
)

// PriceSource records where a line item's final unit price came from.
type PriceSource string

const (
	PriceSourceProvided  PriceSource = "provided"           // seller supplied a price
	PriceSourceDatabase  PriceSource = "database"           // catalog price, none provided
	PriceSourceCorrected PriceSource = "database_corrected" // provided price overridden by catalog
)

// Partition names the logical partitions of the transaction store.
type Partition string

const (
	PartitionPending   Partition = "pending_transactions"
	PartitionConfirmed Partition = "receipts"
	PartitionCancelled Partition = "cancelled_transactions"
)
