package storage

import (
	"time"

	"github.com/venda-crm/venda/internal/models"
)

// seedTime keeps seed records stable across runs so fallback data is
// deterministic.
var seedTime = time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)

// SeedLeads returns the bundled starter leads, used when the lead document is
// missing or unreadable. Callers receive a fresh copy and may mutate it.
func SeedLeads() []models.Lead {
	leads := []models.Lead{
		{
			ID:             1,
			Name:           "Sarah Mitchell",
			Email:          "sarah.mitchell@brightpath.com",
			Phone:          "(555) 201-4477",
			EstimatedValue: 12500,
			Date:           "2024-01-15",
			Column:         "Cold Lead",
		},
		{
			ID:             2,
			Name:           "James Okafor",
			Email:          "j.okafor@harborlight.io",
			Phone:          "(555) 318-9920",
			EstimatedValue: 8400,
			Date:           "2024-01-18",
			Column:         "Cold Lead",
		},
		{
			ID:             3,
			Name:           "Priya Raman",
			Email:          "priya@ramandesign.co",
			Phone:          "(555) 662-0183",
			EstimatedValue: 21000,
			Date:           "2024-01-22",
			Column:         "Hot Lead",
		},
		{
			ID:             4,
			Name:           "Tom Albright",
			Email:          "tom.albright@cascadehvac.com",
			Phone:          "(555) 447-3301",
			EstimatedValue: 5600,
			Date:           "2024-01-25",
			Column:         "Estimate Sent",
		},
		{
			ID:             5,
			Name:           "Lena Fischer",
			Email:          "lena.fischer@nordwind.de",
			Phone:          "(555) 903-5512",
			EstimatedValue: 34000,
			Date:           "2024-01-29",
			Column:         "Closed",
		},
	}
	for i := range leads {
		leads[i].CreatedAt = seedTime
		leads[i].UpdatedAt = seedTime
	}
	return leads
}
