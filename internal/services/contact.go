package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/svitoratos/tangocrm-backend/internal/clients/email"
	"github.com/svitoratos/tangocrm-backend/internal/logger"
	"github.com/svitoratos/tangocrm-backend/internal/repos"
	"github.com/svitoratos/tangocrm-backend/internal/types"
)

type ContactFormInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ContactService handles the public marketing contact form. This is
// unrelated to CRM clients: submissions are stored and forwarded by email,
// nothing more.
type ContactService interface {
	Submit(ctx context.Context, input ContactFormInput) (*types.ContactMessage, error)
}

type contactService struct {
	db          *gorm.DB
	log         *logger.Logger
	messageRepo repos.ContactMessageRepo
	emailClient *email.Client
}

func NewContactService(db *gorm.DB, log *logger.Logger, messageRepo repos.ContactMessageRepo, emailClient *email.Client) ContactService {
	return &contactService{
		db:          db,
		log:         log.With("service", "ContactService"),
		messageRepo: messageRepo,
		emailClient: emailClient,
	}
}

func (cs *contactService) Submit(ctx context.Context, input ContactFormInput) (*types.ContactMessage, error) {
	name := strings.TrimSpace(input.Name)
	addr := strings.ToLower(strings.TrimSpace(input.Email))
	message := strings.TrimSpace(input.Message)
	if name == "" || message == "" {
		return nil, fmt.Errorf("name and message are required")
	}
	if addr == "" || !strings.Contains(addr, "@") {
		return nil, fmt.Errorf("a valid email is required")
	}

	stored, err := cs.messageRepo.Create(ctx, nil, &types.ContactMessage{
		Name:    name,
		Email:   addr,
		Subject: strings.TrimSpace(input.Subject),
		Message: message,
	})
	if err != nil {
		return nil, fmt.Errorf("error storing contact message: %w", err)
	}

	// The submission is already stored; a failed notification only logs.
	if cs.emailClient != nil {
		if err := cs.emailClient.NotifyContactForm(name, addr, stored.Subject, message); err != nil {
			cs.log.Warn("Contact form notification failed", "error", err)
		}
	}
	return stored, nil
}
