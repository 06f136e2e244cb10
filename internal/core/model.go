package core

import (
	"time"
)

// NoURL is stored as the extracted URL when a message carries no link
const NoURL = "No se encontró URL"

// SpamLabel is the binary output of the spam classifier
type SpamLabel string

const (
	SpamLabelSpam    SpamLabel = "Spam"
	SpamLabelNotSpam SpamLabel = "No Spam"
	SpamLabelUnknown SpamLabel = "Desconocido"
)

// URLReputation is the output of the URL reputation checker
type URLReputation string

const (
	URLMalicious    URLReputation = "Malicioso"
	URLNotMalicious URLReputation = "Seguro"
	URLNoURL        URLReputation = "Sin URL"
	URLUnknown      URLReputation = "Desconocido"
)

// RiskTier is the discrete classification of a weighted score
type RiskTier string

const (
	TierSafe          RiskTier = "Seguro"
	TierSuspicious    RiskTier = "Sospechoso"
	TierDangerous     RiskTier = "Peligroso"
	TierIndeterminate RiskTier = "Indeterminado"
)

// Tiers lists the tiers reported by statistics
var Tiers = []RiskTier{TierSafe, TierSuspicious, TierDangerous}

// Judgement is the structured answer of the language-model judge
type Judgement struct {
	Confidence    float64
	Justification string
	Model         string
}

// Scores holds the per-classifier outputs of one analysis.
// LanguageModelScore is the judge confidence normalised to [0,1], 0 when
// the judge failed.
type Scores struct {
	LanguageModelScore float64       `json:"calificacion_gpt"`
	Justification      string        `json:"justificacion_gpt"`
	SpamLabel          SpamLabel     `json:"resultado_ml"`
	URLReputation      URLReputation `json:"resultado_url"`
}

// Verdict is the aggregated risk assessment for one message.
// Content is the lookup key and is never normalised.
type Verdict struct {
	ID              string    `json:"id"`
	Content         string    `json:"contenido"`
	PhoneNumber     string    `json:"numero_celular,omitempty"`
	ExtractedURL    string    `json:"url"`
	Scores          Scores    `json:"analisis"`
	WeightedScore   float64   `json:"ponderado"`
	TierScore       int       `json:"puntaje"`
	RiskTier        RiskTier  `json:"nivel_peligro"`
	WeightingScheme string    `json:"esquema"`
	AnalyzedAt      time.Time `json:"fecha_analisis"`
}

// HasURL reports whether a URL was extracted from the message
func (v *Verdict) HasURL() bool {
	return v.ExtractedURL != "" && v.ExtractedURL != NoURL
}

// AnalyzeRequest is the input of the gateway operation
type AnalyzeRequest struct {
	Message     string `validate:"required,notblank"`
	PhoneNumber string `validate:"omitempty,max=32"`
}

// AnalysisResult wraps a verdict with how it was obtained
type AnalysisResult struct {
	Verdict   *Verdict
	FromCache bool
	Persisted bool
	Outcomes  *FanOutResult
}

// forCaller copies a shared result so each caller gets its own verdict
// carrying its own phone number
func (r *AnalysisResult) forCaller(req AnalyzeRequest) *AnalysisResult {
	verdict := *r.Verdict
	verdict.PhoneNumber = req.PhoneNumber
	result := *r
	result.Verdict = &verdict
	return &result
}

// TierCounts holds the number of stored verdicts per tier
type TierCounts map[RiskTier]int
