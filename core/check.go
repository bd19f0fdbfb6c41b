package core

// Check extracts both sides and analyzes them. Nothing is computed unless
// both sides have at least one document.
func Check(followerDocs []Document, followingDocs []Document) (AnalysisResult, error) {
	if len(followerDocs) == 0 {
		return AnalysisResult{}, &MissingInputError{List: Followers}
	}

	if len(followingDocs) == 0 {
		return AnalysisResult{}, &MissingInputError{List: Following}
	}

	followers, err := ExtractFollowers(followerDocs)
	if err != nil {
		return AnalysisResult{}, err
	}

	following, err := ExtractFollowing(followingDocs)
	if err != nil {
		return AnalysisResult{}, err
	}

	return Analyze(followers, following), nil
}
