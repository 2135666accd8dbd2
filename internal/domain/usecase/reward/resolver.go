package reward

import (
	"context"
	"fmt"

	"github.com/aryaseta/reward-engine/internal/domain/entity"
	errs "github.com/aryaseta/reward-engine/internal/domain/error"
	coreport "github.com/aryaseta/reward-engine/internal/domain/port/core"
	"github.com/aryaseta/reward-engine/internal/domain/port/persistence"
)

// ChainResolver walks a user's upline through referred_by -> referral_code
// linkage, up to MaxChainDepth generations
type ChainResolver struct {
	accounts persistence.AccountRepository
	logger   coreport.Logger
}

// NewChainResolver creates a new ChainResolver
func NewChainResolver(accounts persistence.AccountRepository, logger coreport.Logger) *ChainResolver {
	return &ChainResolver{
		accounts: accounts,
		logger:   logger,
	}
}

// Resolve returns the triggering user's account and its ordered ancestor
// chain (level A first), which may be shorter than MaxChainDepth or empty.
//
// A missing upline account truncates the chain without error; only a store
// failure aborts resolution. The fixed iteration cap is also the cycle
// safety net: corrupted referred_by data that loops back on itself can never
// produce more than MaxChainDepth entries or spin this walk forever.
func (r *ChainResolver) Resolve(ctx context.Context, userID uint64) (*entity.Account, []entity.Ancestor, error) {
	if userID == 0 {
		return nil, nil, errs.ErrInvalidAccountID
	}

	subject, err := r.accounts.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, errs.NewChainResolutionError(userID, 0, err)
	}

	chain := make([]entity.Ancestor, 0, entity.MaxChainDepth)
	current := subject

	for depth, level := range entity.ChainLevels {
		if !current.HasUpline() {
			break
		}

		ancestor, err := r.accounts.GetByReferralCode(ctx, current.ReferredBy)
		if err != nil {
			if errs.IsNotFoundError(err) {
				// Broken linkage is normal truncation, not a failure
				r.logger.Warn("Referral chain broken, truncating", map[string]any{
					"user_id":       userID,
					"level":         string(level),
					"referral_code": current.ReferredBy,
				})
				break
			}
			return nil, nil, errs.NewChainResolutionError(userID, depth+1, err)
		}

		chain = append(chain, entity.Ancestor{Level: level, Account: ancestor})
		current = ancestor
	}

	r.logger.Debug("Referral chain resolved", map[string]any{
		"user_id":     userID,
		"chain_depth": len(chain),
	})
	return subject, chain, nil
}

// ResolveChain is the chain-only variant used where the subject account is
// already at hand
func (r *ChainResolver) ResolveChain(ctx context.Context, userID uint64) ([]entity.Ancestor, error) {
	_, chain, err := r.Resolve(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve chain: %w", err)
	}
	return chain, nil
}
