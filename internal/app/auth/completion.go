package auth

import "github.com/winshaurya/alumnet/internal/app/models"

// Weights of the profile-completion score. They sum to 100.
const (
	weightGradYear       = 25
	weightCurrentTitle   = 25
	weightCompanyRecord  = 20
	weightCompanyName    = 10
	weightCompanyWebsite = 10
	weightCompanyAbout   = 10
)

// MinCompletionToPost is the completion percentage an alumni needs before
// posting jobs.
const MinCompletionToPost = 70

// ProfileCompletion computes the weighted completion percentage of an
// alumni profile. An auto-created placeholder company contributes nothing:
// it only exists so jobs have a company to reference.
func ProfileCompletion(profile *models.AlumniProfile, company *models.Company) int {
	score := 0

	if profile != nil {
		if profile.GradYear != nil {
			score += weightGradYear
		}
		if profile.CurrentTitle != nil && *profile.CurrentTitle != "" {
			score += weightCurrentTitle
		}
	}

	if company != nil && !company.IsPlaceholder() {
		score += weightCompanyRecord
		if company.Name != "" && company.Name != models.PlaceholderCompanyName {
			score += weightCompanyName
		}
		if company.Website != nil && *company.Website != "" {
			score += weightCompanyWebsite
		}
		if company.About != nil && *company.About != "" {
			score += weightCompanyAbout
		}
	}

	return score
}

// CanPostJobs reports whether the computed completion clears the posting gate
func CanPostJobs(completion int) bool {
	return completion >= MinCompletionToPost
}
