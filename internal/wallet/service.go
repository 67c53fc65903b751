package wallet

import (
	"context"
	"fmt"

	"github.com/angelmondragon/vendora-backend/pkg/db"
	"github.com/angelmondragon/vendora-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/vendora-backend/pkg/errors"
)

// Service exposes the admin wallet snapshot.
type Service interface {
	Snapshot(ctx context.Context) (*models.AdminWallet, error)
}

type service struct {
	repo Repository
}

// NewService builds a wallet service with the required dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("wallet repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Snapshot(ctx context.Context) (*models.AdminWallet, error) {
	wallet, err := s.repo.Find(ctx)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "wallet not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wallet")
	}
	return wallet, nil
}
