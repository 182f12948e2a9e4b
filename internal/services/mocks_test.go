package services

import (
	"context"
	"time"

	"guestpass/internal/domain"
)

// mockRegistrationRepository is an in-memory RegistrationRepository keyed the
// same way the Postgres store indexes: by id, (event, owner), (event, email),
// (event, phone). insertErr/updateErr force the constraint-violation paths.
type mockRegistrationRepository struct {
	regs      map[string]*domain.Registration
	insertErr error
	updateErr error
	getErr    error
	// ownerLookupMisses hides existing records from that many owner lookups,
	// simulating a concurrent writer that lands between read and write.
	ownerLookupMisses int

	inserted []*domain.Registration
	updated  []*domain.Registration
}

func newMockRegistrationRepository(regs ...*domain.Registration) *mockRegistrationRepository {
	m := &mockRegistrationRepository{regs: make(map[string]*domain.Registration)}
	for _, r := range regs {
		m.regs[r.ID] = r
	}
	return m
}

func (m *mockRegistrationRepository) Insert(ctx context.Context, reg *domain.Registration) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.regs[reg.ID] = reg
	m.inserted = append(m.inserted, reg)
	return nil
}

func (m *mockRegistrationRepository) Update(ctx context.Context, reg *domain.Registration) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.regs[reg.ID]; !ok {
		return domain.ErrNotFound
	}
	m.regs[reg.ID] = reg
	m.updated = append(m.updated, reg)
	return nil
}

func (m *mockRegistrationRepository) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if reg, ok := m.regs[id]; ok {
		return reg, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockRegistrationRepository) GetByEventAndOwner(ctx context.Context, eventID, ownerID string) (*domain.Registration, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.ownerLookupMisses > 0 {
		m.ownerLookupMisses--
		return nil, domain.ErrNotFound
	}
	for _, reg := range m.regs {
		if reg.EventID == eventID && reg.OwnerID == ownerID {
			return reg, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockRegistrationRepository) GetByEventAndEmail(ctx context.Context, eventID, email string) (*domain.Registration, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, reg := range m.regs {
		if reg.EventID == eventID && reg.Email == email {
			return reg, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockRegistrationRepository) GetByEventAndPhone(ctx context.Context, eventID, phone string) (*domain.Registration, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, reg := range m.regs {
		if reg.EventID == eventID && reg.Phone == phone {
			return reg, nil
		}
	}
	return nil, domain.ErrNotFound
}

type mockEventCatalog struct {
	statuses map[string]domain.EventStatus
	err      error
}

func (m *mockEventCatalog) GetStatus(ctx context.Context, eventID string) (domain.EventStatus, error) {
	if m.err != nil {
		return "", m.err
	}
	status, ok := m.statuses[eventID]
	if !ok {
		return "", domain.ErrNotFound
	}
	return status, nil
}

type mockEventRepository struct {
	events map[string]*domain.Event
	err    error
}

func (m *mockEventRepository) Create(ctx context.Context, event *domain.Event) error {
	if m.err != nil {
		return m.err
	}
	if m.events == nil {
		m.events = make(map[string]*domain.Event)
	}
	m.events[event.ID] = event
	return nil
}

func (m *mockEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	ev, ok := m.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return ev, nil
}

func (m *mockEventRepository) ListByStatus(ctx context.Context, status domain.EventStatus) ([]*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]*domain.Event, 0)
	for _, ev := range m.events {
		if ev.Status == status {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (m *mockEventRepository) SetStatus(ctx context.Context, id string, status domain.EventStatus) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	ev, ok := m.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	ev.Status = status
	return ev, nil
}

type mockTokenRepository struct {
	byRegistration map[string]*domain.QRToken
	insertErr      error
	// forceLost simulates losing the insert race: Insert reports created=false
	// after recording the winner's token.
	forceLost *domain.QRToken
}

func newMockTokenRepository() *mockTokenRepository {
	return &mockTokenRepository{byRegistration: make(map[string]*domain.QRToken)}
}

func (m *mockTokenRepository) Insert(ctx context.Context, token *domain.QRToken) (bool, error) {
	if m.insertErr != nil {
		return false, m.insertErr
	}
	if m.forceLost != nil {
		m.byRegistration[m.forceLost.RegistrationID] = m.forceLost
		return false, nil
	}
	if _, ok := m.byRegistration[token.RegistrationID]; ok {
		return false, nil
	}
	m.byRegistration[token.RegistrationID] = token
	return true, nil
}

func (m *mockTokenRepository) GetByRegistrationID(ctx context.Context, registrationID string) (*domain.QRToken, error) {
	if t, ok := m.byRegistration[registrationID]; ok {
		return t, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockTokenRepository) GetByToken(ctx context.Context, token string) (*domain.QRToken, error) {
	for _, t := range m.byRegistration {
		if t.Token == token {
			return t, nil
		}
	}
	return nil, domain.ErrNotFound
}

type mockCheckInRepository struct {
	byRegistration map[string]*domain.CheckIn
	insertErr      error
}

func newMockCheckInRepository() *mockCheckInRepository {
	return &mockCheckInRepository{byRegistration: make(map[string]*domain.CheckIn)}
}

func (m *mockCheckInRepository) Insert(ctx context.Context, c *domain.CheckIn) (bool, error) {
	if m.insertErr != nil {
		return false, m.insertErr
	}
	if _, ok := m.byRegistration[c.RegistrationID]; ok {
		return false, nil
	}
	m.byRegistration[c.RegistrationID] = c
	return true, nil
}

func (m *mockCheckInRepository) GetByRegistrationID(ctx context.Context, registrationID string) (*domain.CheckIn, error) {
	if c, ok := m.byRegistration[registrationID]; ok {
		return c, nil
	}
	return nil, domain.ErrNotFound
}

type mockMailer struct {
	sent []string
	err  error
}

func (m *mockMailer) Send(to, subject, html, text string) error {
	m.sent = append(m.sent, to)
	return m.err
}

func testRegistration(id, eventID, ownerID, email, phone string) *domain.Registration {
	now := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	return &domain.Registration{
		ID:        id,
		EventID:   eventID,
		OwnerID:   ownerID,
		FullName:  "Test Person",
		Email:     email,
		Phone:     phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
