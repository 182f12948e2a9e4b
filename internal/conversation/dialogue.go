// Package conversation models the linear registration dialogue a chat
// front-end walks an attendee through: pick an event, then provide name,
// email, and phone, then confirm. Each in-flight conversation is one Dialogue
// value keyed by its chat session, so concurrent conversations never share
// draft state. The dialogue calls Submit exactly once, at confirmation.
//
// The chat transport itself (message delivery, QR image rendering) stays
// outside this package; a Dialogue consumes text inputs and produces Reply
// values.
package conversation

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"guestpass/internal/domain"
)

// Step identifies the field the dialogue is currently collecting.
type Step string

const (
	StepEvent   Step = "event"
	StepName    Step = "name"
	StepEmail   Step = "email"
	StepPhone   Step = "phone"
	StepConfirm Step = "confirm"
	StepDone    Step = "done"
)

const (
	inputConfirm = "confirm"
	inputCancel  = "cancel"
)

// Light pre-checks to keep the dialogue responsive; the core re-validates
// everything at submission and remains the authority.
var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^[0-9+()\-\s]{7,20}$`)
)

// Reply is what the front-end should present after each input.
type Reply struct {
	Text         string
	Options      []string
	Done         bool
	Registration *domain.Registration
	Token        *domain.QRToken
}

// Services bundles the core services a dialogue drives.
type Services struct {
	Events        domain.EventService
	Registrations domain.RegistrationService
	Tokens        domain.TokenService
}

// Dialogue is one attendee's in-flight registration conversation.
// Not safe for concurrent use; a chat session delivers its messages in order.
type Dialogue struct {
	svc     Services
	ownerID string
	step    Step

	eventsByLabel map[string]*domain.Event
	labels        []string

	eventID    string
	eventTitle string
	name       string
	email      string
	phone      string
}

// NewDialogue creates a dialogue for the given owner identity.
func NewDialogue(ownerID string, svc Services) *Dialogue {
	return &Dialogue{svc: svc, ownerID: ownerID, step: StepEvent}
}

// Step reports the dialogue's current step.
func (d *Dialogue) CurrentStep() Step {
	return d.step
}

// Start lists open events and asks the attendee to pick one.
func (d *Dialogue) Start(ctx context.Context) (Reply, error) {
	events, err := d.svc.Events.ListByStatus(ctx, domain.EventOpen)
	if err != nil {
		return Reply{}, fmt.Errorf("list open events: %w", err)
	}
	if len(events) == 0 {
		d.step = StepDone
		return Reply{Text: "There are no open events right now. Check back later!", Done: true}, nil
	}

	d.eventsByLabel = make(map[string]*domain.Event, len(events))
	d.labels = d.labels[:0]
	for _, ev := range events {
		label := fmt.Sprintf("%s (%s)", ev.Title, ev.Location)
		if _, taken := d.eventsByLabel[label]; taken {
			label = fmt.Sprintf("%s [%s]", ev.Title, ev.ID)
		}
		d.eventsByLabel[label] = ev
		d.labels = append(d.labels, label)
	}
	d.step = StepEvent
	return Reply{Text: "Which event would you like to register for?", Options: d.labels}, nil
}

// Input advances the dialogue with one attendee message.
func (d *Dialogue) Input(ctx context.Context, text string) (Reply, error) {
	text = strings.TrimSpace(text)
	if strings.EqualFold(text, inputCancel) {
		d.step = StepDone
		return Reply{Text: "Registration cancelled.", Done: true}, nil
	}

	switch d.step {
	case StepEvent:
		return d.pickEvent(text)
	case StepName:
		return d.collectName(text)
	case StepEmail:
		return d.collectEmail(text)
	case StepPhone:
		return d.collectPhone(text)
	case StepConfirm:
		return d.confirm(ctx, text)
	default:
		return Reply{Text: "This conversation has ended. Start again to register.", Done: true}, nil
	}
}

func (d *Dialogue) pickEvent(text string) (Reply, error) {
	ev, ok := d.eventsByLabel[text]
	if !ok {
		for _, candidate := range d.eventsByLabel {
			if candidate.ID == text {
				ev = candidate
				ok = true
				break
			}
		}
	}
	if !ok {
		return Reply{Text: "Please pick one of the listed events.", Options: d.labels}, nil
	}
	d.eventID = ev.ID
	d.eventTitle = ev.Title
	d.step = StepName
	return Reply{Text: fmt.Sprintf("Great, %s it is. What is your full name?", ev.Title)}, nil
}

func (d *Dialogue) collectName(text string) (Reply, error) {
	if len(text) < 2 {
		return Reply{Text: "That name looks too short. Please enter your full name."}, nil
	}
	d.name = text
	d.step = StepEmail
	return Reply{Text: "What email should we use?"}, nil
}

func (d *Dialogue) collectEmail(text string) (Reply, error) {
	if !emailPattern.MatchString(text) {
		return Reply{Text: "That doesn't look like a valid email. Please try again."}, nil
	}
	d.email = strings.ToLower(text)
	d.step = StepPhone
	return Reply{Text: "And your phone number?"}, nil
}

func (d *Dialogue) collectPhone(text string) (Reply, error) {
	if !phonePattern.MatchString(text) {
		return Reply{Text: "That doesn't look like a valid phone number. Please try again."}, nil
	}
	d.phone = text
	d.step = StepConfirm
	summary := fmt.Sprintf("Registering for %s:\nName: %s\nEmail: %s\nPhone: %s",
		d.eventTitle, d.name, d.email, d.phone)
	return Reply{Text: summary, Options: []string{inputConfirm, inputCancel}}, nil
}

// confirm submits the collected draft. Recoverable failures route the
// dialogue back to the offending field instead of ending it.
func (d *Dialogue) confirm(ctx context.Context, text string) (Reply, error) {
	if !strings.EqualFold(text, inputConfirm) {
		return Reply{Text: "Please reply 'confirm' to finish or 'cancel' to abort.", Options: []string{inputConfirm, inputCancel}}, nil
	}

	reg, err := d.svc.Registrations.Submit(ctx, d.eventID, d.ownerID, d.name, d.email, d.phone)
	if err != nil {
		return d.submitFailed(err)
	}

	token, err := d.svc.Tokens.IssueOrGet(ctx, reg.ID)
	if err != nil {
		return Reply{}, fmt.Errorf("issue token: %w", err)
	}

	d.step = StepDone
	return Reply{
		Text:         fmt.Sprintf("You're registered for %s! Here is your ticket.", d.eventTitle),
		Done:         true,
		Registration: reg,
		Token:        token,
	}, nil
}

func (d *Dialogue) submitFailed(err error) (Reply, error) {
	var validation *domain.ValidationError
	if errors.As(err, &validation) {
		switch validation.Field {
		case "full_name":
			d.step = StepName
			return Reply{Text: "Your name didn't pass validation. Please enter your full name again."}, nil
		case "email":
			d.step = StepEmail
			return Reply{Text: "Your email didn't pass validation. Please enter it again."}, nil
		case "phone":
			d.step = StepPhone
			return Reply{Text: "Your phone number didn't pass validation. Please enter it again."}, nil
		}
	}
	var conflict *domain.ConflictError
	if errors.As(err, &conflict) {
		if conflict.Reason == domain.ReasonPhoneTaken {
			d.step = StepPhone
			return Reply{Text: "That phone number is already registered for this event. Please use a different one."}, nil
		}
		d.step = StepEmail
		return Reply{Text: "That email is already registered for this event. Please use a different one."}, nil
	}
	var closed *domain.EventClosedError
	if errors.As(err, &closed) {
		d.step = StepDone
		return Reply{Text: fmt.Sprintf("Sorry, registration for %s has closed.", d.eventTitle), Done: true}, nil
	}
	return Reply{}, fmt.Errorf("submit registration: %w", err)
}
