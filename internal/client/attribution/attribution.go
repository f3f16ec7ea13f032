// Package attribution supplies the install attribution identifier sent with
// the gate request.
package attribution

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/farmily/farmily/internal/client/models"
	"github.com/farmily/farmily/internal/client/repositories/settings"
	"github.com/farmily/farmily/internal/common"
	"github.com/farmily/farmily/internal/logging"
	"github.com/google/uuid"
)

// Provider returns an identifier that is stable for this install.
type Provider interface {
	AttributionID(ctx context.Context) string
}

// InstallIDProvider keeps a random UUID in the settings store under
// models.KeyAttributionID. Init creates and stores it; AttributionID only
// reads.
type InstallIDProvider struct {
	repo settings.Repository
	log  logging.Logger

	mu sync.Mutex
	id string
}

func NewInstallIDProvider(repo settings.Repository, log logging.Logger) *InstallIDProvider {
	return &InstallIDProvider{repo: repo, log: log.With("component", "attribution")}
}

// Init loads the stored id, or generates and stores one. On a store error the
// id is still kept for this process and the error is returned.
func (p *InstallIDProvider) Init(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	stored, err := p.load(ctx)
	if err != nil {
		p.id = uuid.NewString()
		return err
	}
	if stored != "" {
		p.id = stored
		return nil
	}

	p.id = uuid.NewString()
	if err := p.repo.Set(ctx, models.KeyAttributionID, p.id); err != nil {
		return fmt.Errorf("failed to store attribution id: %w", err)
	}
	return nil
}

// AttributionID never fails and never writes. Without a prior Init it reads
// the store, and if nothing is there it uses an id that lives only as long as
// the process.
func (p *InstallIDProvider) AttributionID(ctx context.Context) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.id != "" {
		return p.id
	}
	stored, err := p.load(ctx)
	if err != nil {
		p.log.Warn(ctx, "failed to read attribution id", "error", err)
	}
	if stored == "" {
		stored = uuid.NewString()
	}
	p.id = stored
	return p.id
}

func (p *InstallIDProvider) load(ctx context.Context) (string, error) {
	stored, err := p.repo.Get(ctx, models.KeyAttributionID)
	if errors.Is(err, common.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read attribution id: %w", err)
	}
	return stored, nil
}
