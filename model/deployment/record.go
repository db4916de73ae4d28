package deployment

// Record is the persisted summary of a run. It never contains the secret.
type Record struct {
	Contract        string            `json:"contract" yaml:"contract"`
	ChainID         string            `json:"chain_id" yaml:"chain_id"`
	Address         string            `json:"address" yaml:"address"`
	DeployTx        string            `json:"deploy_tx" yaml:"deploy_tx"`
	BlockNumber     uint64            `json:"block_number" yaml:"block_number"`
	ConstructorArgs []string          `json:"constructor_args" yaml:"constructor_args"`
	Verification    string            `json:"verification" yaml:"verification"`
	Operations      []OperationRecord `json:"operations" yaml:"operations"`
}

type OperationRecord struct {
	Label       string `json:"label" yaml:"label"`
	Method      string `json:"method" yaml:"method"`
	TxHash      string `json:"tx_hash" yaml:"tx_hash"`
	State       string `json:"state" yaml:"state"`
	BlockNumber uint64 `json:"block_number" yaml:"block_number"`
	GasUsed     uint64 `json:"gas_used" yaml:"gas_used"`
}

// NewOperationRecord converts an outcome into its persisted form.
func NewOperationRecord(o *Outcome) OperationRecord {
	return OperationRecord{
		Label:       o.Operation.Label,
		Method:      o.Operation.Method,
		TxHash:      o.TxHash.Hex(),
		State:       o.State.String(),
		BlockNumber: o.BlockNumber,
		GasUsed:     o.GasUsed,
	}
}
