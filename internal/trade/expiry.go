package trade

import (
	"time"

	"frontoffice/internal/models"
)

// ExpireStaleProposals transitions pending proposals whose expiry has passed
// to expired. It returns the full updated set plus the newly expired subset;
// each expired proposal appears in that subset exactly once. Terminal
// proposals are never touched.
func ExpireStaleProposals(proposals []models.TradeProposal, now time.Time) ([]models.TradeProposal, []models.TradeProposal) {
	updated := make([]models.TradeProposal, len(proposals))
	copy(updated, proposals)

	var expired []models.TradeProposal
	for i := range updated {
		if updated[i].Status != models.ProposalPending {
			continue
		}
		if !updated[i].ExpiresAt.Before(now) {
			continue
		}
		updated[i].Status = models.ProposalExpired
		resolved := now
		updated[i].ResolvedAt = &resolved
		expired = append(expired, updated[i])
	}
	return updated, expired
}
