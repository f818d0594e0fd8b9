package partner

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatflowers/bankgate/pkg/config"
	"github.com/fatflowers/bankgate/pkg/types"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Registry is the immutable set of partners loaded at startup. Replacing it
// requires a restart; there is no mutation API.
type Registry struct {
	byCode map[string]types.Partner
}

// NewRegistry indexes partners by code. Blank codes, empty secrets and
// duplicate codes are rejected.
func NewRegistry(partners []*types.Partner) (*Registry, error) {
	valid := lo.Compact(partners)
	for i, p := range valid {
		if strings.TrimSpace(p.Code) == "" {
			return nil, fmt.Errorf("partner #%d: code is blank", i)
		}
		if p.Secret == "" {
			return nil, fmt.Errorf("partner %s: secret is empty", p.Code)
		}
	}
	if dups := lo.FindDuplicatesBy(valid, func(p *types.Partner) string { return p.Code }); len(dups) > 0 {
		return nil, fmt.Errorf("duplicate partner code: %s", dups[0].Code)
	}
	byCode := lo.SliceToMap(valid, func(p *types.Partner) (string, types.Partner) { return p.Code, *p })
	return &Registry{byCode: byCode}, nil
}

// New builds the registry from config for Fx.
func New(cfg *config.Config, log *zap.SugaredLogger) (*Registry, error) {
	r, err := NewRegistry(cfg.Partners)
	if err != nil {
		return nil, fmt.Errorf("failed to load partners: %w", err)
	}
	if r.Len() == 0 {
		log.Warnw("no partners configured, every notification will be rejected")
	}
	log.Infow("partners loaded", "count", r.Len(), "codes", r.Codes())
	return r, nil
}

// Find returns the partner registered under code. Matching is exact.
func (r *Registry) Find(code string) (types.Partner, bool) {
	if r == nil {
		return types.Partner{}, false
	}
	p, ok := r.byCode[code]
	return p, ok
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.byCode)
}

// Codes returns the registered partner codes in sorted order.
func (r *Registry) Codes() []string {
	if r == nil {
		return nil
	}
	codes := lo.Keys(r.byCode)
	sort.Strings(codes)
	return codes
}
