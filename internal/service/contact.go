package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/khunglong92/dogiadung-sub001/internal/core"
	"github.com/khunglong92/dogiadung-sub001/internal/data"
	"github.com/khunglong92/dogiadung-sub001/internal/domain/model"
	apperrors "github.com/khunglong92/dogiadung-sub001/internal/errors"
)

// ContactNotifier is notified after a new contact request is stored.
type ContactNotifier interface {
	Dispatch(ctx context.Context, contact *model.Contact) error
}

// ContactServiceOptions groups dependencies for ContactService.
type ContactServiceOptions struct {
	ContactRepo core.ContactRepository
	Notifier    ContactNotifier // optional
	Logger      *slog.Logger    // optional
}

// ContactService orchestrates contact request intake and admin triage.
// Submissions come from the public form; everything else is admin-only.
type ContactService struct {
	contacts core.ContactRepository
	notifier ContactNotifier
	logger   *slog.Logger

	// dispatches tracks in-flight sink notifications so tests can wait
	// for them.
	dispatches sync.WaitGroup
}

// NewContactService constructs a new ContactService.
func NewContactService(opts ContactServiceOptions) *ContactService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ContactService{
		contacts: opts.ContactRepo,
		notifier: opts.Notifier,
		logger:   logger,
	}
}

// Submit stores a contact-form submission and notifies configured sinks in
// the background. The form response never waits on sink delivery, and a
// notification failure never fails the submission; the contact is already
// persisted and visible in the dashboard.
func (s *ContactService) Submit(ctx context.Context, req *model.CreateContactRequest) (*model.Contact, error) {
	if req == nil {
		return nil, apperrors.Validation("contact submission is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	contact, err := s.contacts.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		// Detached from the request context so a client disconnect does
		// not cancel delivery mid-flight.
		dispatchCtx := context.WithoutCancel(ctx)
		s.dispatches.Add(1)
		go func() {
			defer s.dispatches.Done()
			if notifyErr := s.notifier.Dispatch(dispatchCtx, contact); notifyErr != nil {
				s.logger.WarnContext(dispatchCtx, "contact notification failed",
					"contact_id", contact.ID,
					"error", notifyErr)
			}
		}()
	}
	return contact, nil
}

// GetByID retrieves a contact by ID.
func (s *ContactService) GetByID(ctx context.Context, id string) (*model.Contact, error) {
	contact, err := s.contacts.GetByID(ctx, id)
	if err != nil {
		return nil, mapContactErr(err)
	}
	return contact, nil
}

// List returns one page of contacts plus the total matching count.
func (s *ContactService) List(ctx context.Context, opts model.ContactsListOptions) (*Page[model.Contact], error) {
	var page Page[model.Contact]
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := s.contacts.List(gctx, opts)
		if err != nil {
			return err
		}
		page.Items = items
		return nil
	})
	g.Go(func() error {
		total, err := s.contacts.Count(gctx, opts)
		if err != nil {
			return err
		}
		page.Total = total
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return &page, nil
}

// Update changes a contact's triage status.
func (s *ContactService) Update(ctx context.Context, id string, req model.UpdateContactRequest) (*model.Contact, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	contact, err := s.contacts.Update(ctx, id, req)
	if err != nil {
		return nil, mapContactErr(err)
	}
	return contact, nil
}

// Delete deletes a contact by ID.
func (s *ContactService) Delete(ctx context.Context, id string) error {
	ok, err := s.contacts.Delete(ctx, id)
	if err != nil {
		return mapContactErr(err)
	}
	if !ok {
		return apperrors.NotFound("contact not found")
	}
	return nil
}

func mapContactErr(err error) error {
	if errors.Is(err, data.ErrContactNotFound) {
		return apperrors.NotFound("contact not found")
	}
	return err
}
