package types

// Brief analysis ------------------------------------------------------------------

// BriefAnalysis is derived from the brief text alone; never persisted.
type BriefAnalysis struct {
	Score          int      `json:"score"`
	Suggestions    []string `json:"suggestions"`
	Strengths      []string `json:"strengths"`
	Warnings       []string `json:"warnings"`
	MarketInsights []string `json:"marketInsights"`
}

// Territory confidence ------------------------------------------------------------

type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

type TerritoryConfidence struct {
	MarketFit            int       `json:"marketFit"`
	RiskLevel            RiskLevel `json:"riskLevel"`
	ComplianceConfidence int       `json:"complianceConfidence"`
	AudienceResonance    int       `json:"audienceResonance"`
	Reasoning            string    `json:"reasoning"`
}

// Performance prediction -----------------------------------------------------------

type CategoryScores struct {
	AudienceResonance    int `json:"audienceResonance"`
	BrandAlignment       int `json:"brandAlignment"`
	MarketFit            int `json:"marketFit"`
	CreativePotential    int `json:"creativePotential"`
	ExecutionFeasibility int `json:"executionFeasibility"`
}

type PerformancePrediction struct {
	OverallScore    int            `json:"overallScore"`
	CategoryScores  CategoryScores `json:"categoryScores"`
	Strengths       []string       `json:"strengths"`
	Weaknesses      []string       `json:"weaknesses"`
	Recommendations []string       `json:"recommendations"`
	Confidence      int            `json:"confidence"`
}
