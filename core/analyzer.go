package core

import "math"

// AnalysisResult is computed fresh on every call and never mutated.
type AnalysisResult struct {
	FollowerCount           int      `json:"followerCount"`
	FollowingCount          int      `json:"followingCount"`
	NotFollowingBack        []string `json:"notFollowingBack"`
	NotFollowingBackPercent float64  `json:"notFollowingBackPercent"`
	FollowBackRate          float64  `json:"followBackRate"`
}

// Analyze lists the accounts in following that are absent from followers.
// Both percentages are 0 when following is empty.
func Analyze(followers UserSet, following UserSet) AnalysisResult {
	notFollowingBack := following.Difference(followers).Sorted()

	result := AnalysisResult{
		FollowerCount:    followers.Len(),
		FollowingCount:   following.Len(),
		NotFollowingBack: notFollowingBack,
	}

	if following.Len() == 0 {
		return result
	}

	result.NotFollowingBackPercent = roundOneDecimal(100 * float64(len(notFollowingBack)) / float64(following.Len()))
	result.FollowBackRate = roundOneDecimal(100 - result.NotFollowingBackPercent)

	return result
}

// roundOneDecimal rounds half to even, so 6.25 becomes 6.2.
func roundOneDecimal(v float64) float64 {
	return math.RoundToEven(v*10) / 10
}
