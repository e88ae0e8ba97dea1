package timelock

import (
	"fmt"
	"math"
	"time"
)

// SecurityLevel represents the security level of session parameters
type SecurityLevel string

const (
	SecurityLevelLow    SecurityLevel = "low"
	SecurityLevelMedium SecurityLevel = "medium"
	SecurityLevelHigh   SecurityLevel = "high"
)

// ValidationResult contains the result of parameter validation
type ValidationResult struct {
	Valid           bool          `json:"valid"`
	SecurityLevel   SecurityLevel `json:"security_level"`
	Warnings        []string      `json:"warnings,omitempty"`
	Errors          []string      `json:"errors,omitempty"`
	Recommendations []string      `json:"recommendations,omitempty"`
}

// SessionValidator checks the holder-count and threshold parameters of a
// vote session before any shares are dealt.
type SessionValidator struct {
	MinHolders          int     `json:"min_holders"`
	MinThreshold        int     `json:"min_threshold"`
	MaxHolders          int     `json:"max_holders"`
	RecommendedMinRatio float64 `json:"recommended_min_ratio"` // Minimum recommended threshold ratio
	RecommendedMaxRatio float64 `json:"recommended_max_ratio"` // Maximum recommended threshold ratio
}

// NewDefaultSessionValidator creates a validator with secure default parameters
func NewDefaultSessionValidator() *SessionValidator {
	return &SessionValidator{
		MinHolders:          3,         // Minimum for a meaningful threshold
		MinThreshold:        2,         // A threshold of 1 collapses to a single trusted holder
		MaxHolders:          maxShares, // Ledger holder slots are a byte
		RecommendedMinRatio: 0.51,      // Just over half
		RecommendedMaxRatio: 0.80,      // Leave room for unresponsive holders
	}
}

// ValidateSessionParameters validates holder count and threshold
func (sv *SessionValidator) ValidateSessionParameters(holderCount, threshold int) *ValidationResult {
	result := &ValidationResult{
		Valid:           true,
		SecurityLevel:   SecurityLevelMedium,
		Warnings:        []string{},
		Errors:          []string{},
		Recommendations: []string{},
	}

	// Basic validation checks
	if threshold <= 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "threshold must be positive")
	}

	if holderCount <= 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "holder count must be positive")
	}

	if threshold > holderCount {
		result.Valid = false
		result.Errors = append(result.Errors, "threshold cannot exceed holder count")
	}

	// Early return if basic validation fails
	if !result.Valid {
		result.SecurityLevel = SecurityLevelLow
		return result
	}

	if holderCount < sv.MinHolders {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("minimum %d holders required for security", sv.MinHolders))
	}

	if threshold < sv.MinThreshold {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("minimum threshold of %d required", sv.MinThreshold))
	}

	if holderCount > sv.MaxHolders {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("holder count exceeds maximum of %d", sv.MaxHolders))
	}

	if !result.Valid {
		result.SecurityLevel = SecurityLevelLow
		return result
	}

	thresholdRatio := float64(threshold) / float64(holderCount)

	if thresholdRatio >= sv.RecommendedMinRatio && thresholdRatio <= sv.RecommendedMaxRatio {
		result.SecurityLevel = SecurityLevelHigh
	}

	if thresholdRatio < sv.RecommendedMinRatio {
		result.SecurityLevel = SecurityLevelLow
		result.Warnings = append(result.Warnings, "threshold ratio is below recommended minimum for security")
		result.Recommendations = append(result.Recommendations,
			fmt.Sprintf("consider increasing threshold to at least %d", int(math.Ceil(float64(holderCount)*sv.RecommendedMinRatio))))
	} else if thresholdRatio > sv.RecommendedMaxRatio {
		result.Warnings = append(result.Warnings, "threshold ratio is high, may block recovery if holders go silent")
		result.Recommendations = append(result.Recommendations, "consider whether such a high threshold is necessary")
	}

	if threshold == 1 {
		result.SecurityLevel = SecurityLevelLow
		result.Warnings = append(result.Warnings, "threshold of 1 lets any single holder recover the key")
	}

	if threshold == holderCount {
		result.Warnings = append(result.Warnings, "threshold equals holder count - one silent holder blocks recovery")
		result.Recommendations = append(result.Recommendations, "consider reducing threshold to tolerate holder failures")
	}

	return result
}

// ValidateDecryptionTime validates a session's decryption timestamp
// against its voting window
func ValidateDecryptionTime(decryptionTime, votingEnd time.Time) *ValidationResult {
	result := &ValidationResult{
		Valid:           true,
		SecurityLevel:   SecurityLevelMedium,
		Warnings:        []string{},
		Errors:          []string{},
		Recommendations: []string{},
	}

	if decryptionTime.Before(votingEnd) {
		result.Valid = false
		result.Errors = append(result.Errors, "decryption time falls inside the voting window")
	}

	if decryptionTime.Before(time.Now()) {
		result.Warnings = append(result.Warnings, "decryption time is already in the past")
	}

	return result
}
