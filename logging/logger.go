package logging

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"
)

// Environment variable name for controlling statistics visibility
const ENV_DEV_MODE = "DEV_MODE"

// Statistics represents the collected request statistics
type Statistics struct {
	UniqueVisitors    map[string]time.Time `json:"uniqueVisitors"`    // IP -> Last Visit Time
	AssessmentCount   int                  `json:"assessmentCount"`   // Total number of assessment requests
	ErrorCount        int                  `json:"errorCount"`        // Number of failed assessments
	PopularDomains    map[string]int       `json:"popularDomains"`    // Domain -> Count
	MaturityLevels    map[string]int       `json:"maturityLevels"`    // Maturity level -> Count
	AverageAnalysisMs float64              `json:"averageAnalysisMs"` // Average analysis time in milliseconds
	TotalAnalysisMs   float64              `json:"-"`                 // Used to calculate average
	RequestCount      int                  `json:"-"`                 // Used to calculate average
	LastPersisted     time.Time            `json:"lastPersisted"`     // Last time stats were saved
	mutex             sync.RWMutex         `json:"-"`
}

var (
	stats *Statistics
	once  sync.Once
)

// Initialize creates or loads the statistics
func Initialize() *Statistics {
	once.Do(func() {
		stats = &Statistics{
			UniqueVisitors: make(map[string]time.Time),
			PopularDomains: make(map[string]int),
			MaturityLevels: make(map[string]int),
			LastPersisted:  time.Now(),
		}

		// Try to load existing statistics
		if err := stats.Load(); err != nil {
			fmt.Printf("Could not load existing statistics: %v\n", err)
		}
	})
	return stats
}

// TrackVisitor records a unique visitor
func (s *Statistics) TrackVisitor(ip string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.UniqueVisitors[ip] = time.Now()
}

// cleanDomain reduces an assessed URL to just its hostname so popularity
// counts don't split across paths and query strings.
func cleanDomain(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return ""
	}

	host := strings.ToLower(u.Hostname())

	// Don't track ourselves
	if strings.Contains(host, "localhost") || strings.Contains(host, "127.0.0.1") {
		return ""
	}

	return strings.TrimPrefix(host, "www.")
}

// TrackAssessment records an assessment request and its outcome. The
// maturity level is empty for failed assessments.
func (s *Statistics) TrackAssessment(targetURL string, analysisMs float64, maturityLevel string, hasError bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.AssessmentCount++

	if domain := cleanDomain(targetURL); domain != "" {
		s.PopularDomains[domain]++
	}

	if hasError {
		s.ErrorCount++
	} else if maturityLevel != "" {
		s.MaturityLevels[maturityLevel]++
	}

	// Update average analysis time
	s.TotalAnalysisMs += analysisMs
	s.RequestCount++
	s.AverageAnalysisMs = s.TotalAnalysisMs / float64(s.RequestCount)
}

// GetUniqueVisitorsCount returns the number of unique visitors in the last 24 hours
func (s *Statistics) GetUniqueVisitorsCount() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.uniqueVisitorsLocked()
}

func (s *Statistics) uniqueVisitorsLocked() int {
	count := 0
	cutoff := time.Now().Add(-24 * time.Hour)

	for _, lastVisit := range s.UniqueVisitors {
		if lastVisit.After(cutoff) {
			count++
		}
	}

	return count
}

// GetPopularDomains returns the top N most assessed domains
func (s *Statistics) GetPopularDomains(n int) map[string]int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.popularDomainsLocked(n)
}

func (s *Statistics) popularDomainsLocked(n int) map[string]int {
	result := make(map[string]int)
	count := 0

	// Simple implementation - for production, use a heap or sorted data structure
	for domain, freq := range s.PopularDomains {
		if count < n {
			result[domain] = freq
			count++
		}
	}

	return result
}

// GetErrorRate returns the error rate as a percentage
func (s *Statistics) GetErrorRate() float64 {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.errorRateLocked()
}

func (s *Statistics) errorRateLocked() float64 {
	if s.AssessmentCount == 0 {
		return 0
	}

	return (float64(s.ErrorCount) / float64(s.AssessmentCount)) * 100
}

// Save persists the statistics to a file
func (s *Statistics) Save() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.LastPersisted = time.Now()

	file, err := os.Create("statistics.json")
	if err != nil {
		return fmt.Errorf("could not create statistics file: %v", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	if err := encoder.Encode(s); err != nil {
		return fmt.Errorf("could not encode statistics: %v", err)
	}

	return nil
}

// Load reads the statistics from a file
func (s *Statistics) Load() error {
	file, err := os.Open("statistics.json")
	if err != nil {
		if os.IsNotExist(err) {
			return nil // Not an error if file doesn't exist yet
		}
		return fmt.Errorf("could not open statistics file: %v", err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	if err := decoder.Decode(s); err != nil {
		return fmt.Errorf("could not decode statistics: %v", err)
	}

	return nil
}

// GetStatistics returns a copy of the current statistics, but only in development mode
func (s *Statistics) GetStatistics() map[string]interface{} {
	// Check if we're in development mode
	if os.Getenv(ENV_DEV_MODE) != "true" {
		// In production, return limited statistics without sensitive data
		s.mutex.RLock()
		defer s.mutex.RUnlock()

		return map[string]interface{}{
			"uniqueVisitors24h": s.uniqueVisitorsLocked(),
			"totalAssessments":  s.AssessmentCount,
			"errorRate":         s.errorRateLocked(),
			"averageAnalysisMs": s.AverageAnalysisMs,
		}
	}

	// In development mode, return full statistics
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return map[string]interface{}{
		"uniqueVisitors24h": s.uniqueVisitorsLocked(),
		"totalAssessments":  s.AssessmentCount,
		"errorRate":         s.errorRateLocked(),
		"averageAnalysisMs": s.AverageAnalysisMs,
		"maturityLevels":    s.MaturityLevels,
		"popularDomains":    s.popularDomainsLocked(5), // Top 5 domains only shown in dev mode
	}
}
