package api

// ExtractRequest is the body of POST /api/extract. Text is optional;
// when omitted the daemon's copy of the block is used.
type ExtractRequest struct {
	BlockID string `json:"block_id"`
	Text    string `json:"text,omitempty"`
}

// ExportRequest is the body of POST /api/export. Text is the host's
// copied subtree dump; Deck overrides the configured deck.
type ExportRequest struct {
	BlockID string `json:"block_id"`
	Text    string `json:"text,omitempty"`
	Deck    string `json:"deck,omitempty"`
}

// BlockRequest is the body of PUT /api/blocks/{id}.
type BlockRequest struct {
	Text string `json:"text"`
}

// ResetResponse reports how many ledger rows a reset removed.
type ResetResponse struct {
	Removed int64 `json:"removed"`
}
