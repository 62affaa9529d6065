package domain

// PrivacyHygieneProfile is the Privacy-Hygiene Analyzer output.
// AvgReceiveToSendDelay is in seconds; nil when no receive/send pair exists.
type PrivacyHygieneProfile struct {
	PrivacyProgramInteractions int      `json:"privacyProgramInteractions"`
	HasPrivacyAttempts         bool     `json:"hasPrivacyAttempts"`
	ImmediateReuseAfterPrivacy bool     `json:"immediateReuseAfterPrivacy"`
	AvgReceiveToSendDelay      *float64 `json:"avgTimeDelayAfterReceive"`
	HasConsistentAmounts       bool     `json:"hasConsistentAmounts"`
	RiskSignals                []string `json:"riskSignals"`
}
