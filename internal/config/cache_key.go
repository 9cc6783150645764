package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// TestPolicyKey returns the cache key for a test's grading policy.
func (r *CacheKeyStruct) TestPolicyKey(testID string) string {
	return fmt.Sprintf("test:%s:policy", testID)
}

// TestPaperKey returns the cache key for a test's assembled paper
// (sections, questions, and options without correctness data).
func (r *CacheKeyStruct) TestPaperKey(testID string) string {
	return fmt.Sprintf("test:%s:paper", testID)
}

var CacheKey = NewCacheKeyStruct()
