package domain

// Risk levels emitted by the scam classifier.
const (
	RiskLow    = "Low"
	RiskMedium = "Medium"
	RiskHigh   = "High"
)

// ScamVerdict is the classification result for submitted text. The provider
// response is relayed without repair, so any field may be absent; IsScam is a
// pointer to distinguish a missing field from an explicit false.
type ScamVerdict struct {
	IsScam    *bool  `json:"isScam,omitempty"`
	RiskLevel string `json:"riskLevel,omitempty"`
	Reason    string `json:"reason,omitempty"`
}
