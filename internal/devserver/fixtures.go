package devserver

import "github.com/casedesk/cli/internal/models"

// FixtureCases returns the static case list served by the development backend
func FixtureCases() []models.Case {
	return []models.Case{
		{
			ID:          1,
			CaseNumber:  "CR/1234/2023",
			Title:       "State vs. John Doe",
			Client:      "John Doe",
			Court:       "District Court #5",
			FilingDate:  "2023-01-15",
			NextHearing: "2024-01-15",
			Status:      models.StatusActive,
			Priority:    models.PriorityHigh,
		},
		{
			ID:          2,
			CaseNumber:  "CS/5678/2023",
			Title:       "ABC Corp vs. XYZ Ltd",
			Client:      "ABC Corporation",
			Court:       "High Court",
			FilingDate:  "2023-02-20",
			NextHearing: "2024-01-20",
			Status:      models.StatusPending,
			Priority:    models.PriorityMedium,
		},
		{
			ID:          3,
			CaseNumber:  "FM/0412/2022",
			Title:       "Re: Estate of M. Kapoor",
			Client:      "Kapoor Family Trust",
			Court:       "Family Court",
			FilingDate:  "2022-09-02",
			NextHearing: "",
			Status:      models.StatusClosed,
			Priority:    models.PriorityLow,
		},
	}
}

// FixtureHearings returns the static hearing list served by the development backend
func FixtureHearings() []models.Hearing {
	return []models.Hearing{
		{
			ID:         1,
			CaseNumber: "CR/1234/2023",
			Title:      "State vs. John Doe",
			Date:       "2024-01-15",
			Time:       "10:30 AM",
			Court:      "District Court #5",
		},
		{
			ID:         2,
			CaseNumber: "CS/5678/2023",
			Title:      "ABC Corp vs. XYZ Ltd",
			Date:       "2024-01-20",
			Time:       "02:15 PM",
			Court:      "High Court",
		},
	}
}
