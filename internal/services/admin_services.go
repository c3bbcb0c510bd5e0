package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/gitfusionforge-code/FusionForgePCs-sub002/internal/session"
)

// AdminService elevates an already-authenticated primary identity to an
// admin session when the email is on the allow-list.
type AdminService struct {
	Sessions session.Store
	allowed  map[string]bool
	Log      *zap.Logger
}

func NewAdminService(store session.Store, allowedEmails []string, log *zap.Logger) *AdminService {
	allowed := make(map[string]bool, len(allowedEmails))
	for _, e := range allowedEmails {
		allowed[strings.ToLower(strings.TrimSpace(e))] = true
	}
	return &AdminService{Sessions: store, allowed: allowed, Log: log}
}

func (s *AdminService) IsAllowed(email string) bool {
	return s.allowed[strings.ToLower(strings.TrimSpace(email))]
}

func (s *AdminService) Login(ctx context.Context, email string) (string, error) {
	if !s.IsAllowed(email) {
		s.Log.Warn("admin elevation refused", zap.String("email", email))
		return "", ErrNotAdmin
	}

	id, err := s.Sessions.Create(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", err
	}

	s.Log.Info("admin session created", zap.String("email", email))
	return id, nil
}

func (s *AdminService) Logout(ctx context.Context, sessionID string) error {
	return s.Sessions.Destroy(ctx, sessionID)
}
