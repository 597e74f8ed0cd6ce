package auth

import (
	"testing"

	"github.com/winshaurya/alumnet/internal/app/models"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestProfileCompletion(t *testing.T) {
	fullCompany := &models.Company{
		Name:    "Acme Corp",
		Website: strPtr("https://acme.example"),
		About:   strPtr("We make everything"),
	}

	tests := []struct {
		name    string
		profile *models.AlumniProfile
		company *models.Company
		want    int
	}{
		{
			name:    "empty profile no company",
			profile: &models.AlumniProfile{},
			company: nil,
			want:    0,
		},
		{
			name:    "grad year and title but no company scores fifty",
			profile: &models.AlumniProfile{GradYear: intPtr(2018), CurrentTitle: strPtr("Staff Engineer")},
			company: nil,
			want:    50,
		},
		{
			name:    "placeholder company contributes nothing",
			profile: &models.AlumniProfile{GradYear: intPtr(2018), CurrentTitle: strPtr("Staff Engineer")},
			company: &models.Company{Name: models.PlaceholderCompanyName},
			want:    50,
		},
		{
			name:    "everything set scores one hundred",
			profile: &models.AlumniProfile{GradYear: intPtr(2018), CurrentTitle: strPtr("Staff Engineer")},
			company: fullCompany,
			want:    100,
		},
		{
			name:    "company without about",
			profile: &models.AlumniProfile{GradYear: intPtr(2018), CurrentTitle: strPtr("Staff Engineer")},
			company: &models.Company{Name: "Acme Corp", Website: strPtr("https://acme.example")},
			want:    90,
		},
		{
			name:    "company only",
			profile: &models.AlumniProfile{},
			company: fullCompany,
			want:    50,
		},
		{
			name:    "nil profile",
			profile: nil,
			company: fullCompany,
			want:    50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ProfileCompletion(tt.profile, tt.company); got != tt.want {
				t.Errorf("ProfileCompletion() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCanPostJobs(t *testing.T) {
	if CanPostJobs(50) {
		t.Error("CanPostJobs(50) = true, want false")
	}
	if !CanPostJobs(70) {
		t.Error("CanPostJobs(70) = false, want true")
	}
	if !CanPostJobs(100) {
		t.Error("CanPostJobs(100) = false, want true")
	}
}
