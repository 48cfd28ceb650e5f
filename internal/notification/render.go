package notification

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"approval-workflow/internal/entities"
)

const timeLayout = "2006-01-02 15:04:05"

//go:embed templates/*.html
var templateFS embed.FS

type createdView struct {
	ApproverName       string
	RequestID          string
	RequestTitle       string
	RequestDescription string
	RequestType        string
	CreatorName        string
	CreatedAt          string
}

type statusView struct {
	CreatorName         string
	RequestID           string
	RequestTitle        string
	RequestStatus       string
	ActionPerformerName string
	Comments            string
	IsApproved          bool
}

// Renderer turns events into HTML emails.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render builds the message for ev.
func (r *Renderer) Render(ev Event) (Message, error) {
	switch ev.Kind {
	case KindRequestCreated:
		return r.renderCreated(ev.Snapshot)
	case KindStatusChanged:
		return r.renderStatus(ev)
	default:
		return Message{}, fmt.Errorf("unknown notification kind %q", ev.Kind)
	}
}

func (r *Renderer) renderCreated(snap entities.RequestSnapshot) (Message, error) {
	if snap.Approver == nil || snap.Approver.EmailAddress() == "" {
		return Message{}, ErrNoRecipient
	}
	req := snap.Request

	description := ""
	if req.Description != nil {
		description = *req.Description
	}
	body, err := r.execute("request-created.html", createdView{
		ApproverName:       snap.Approver.FullName,
		RequestID:          req.ID.String(),
		RequestTitle:       req.Title,
		RequestDescription: description,
		RequestType:        snap.Type.Name,
		CreatorName:        snap.Requester.FullName,
		CreatedAt:          req.CreatedAt.Format(timeLayout),
	})
	if err != nil {
		return Message{}, err
	}

	return Message{
		RequestID: req.ID,
		To:        snap.Approver.EmailAddress(),
		ToName:    snap.Approver.FullName,
		Subject:   "New Approval Request: " + req.Title,
		HTMLBody:  body,
	}, nil
}

func (r *Renderer) renderStatus(ev Event) (Message, error) {
	snap := ev.Snapshot
	if snap.Requester.EmailAddress() == "" {
		return Message{}, ErrNoRecipient
	}
	req := snap.Request

	comments := entities.NoCommentsText
	if ev.Comments != nil {
		comments = *ev.Comments
	}
	actorName := ""
	if ev.Actor != nil {
		actorName = ev.Actor.FullName
	}
	approved := req.Status == entities.StatusApproved

	body, err := r.execute("request-status-update.html", statusView{
		CreatorName:         snap.Requester.FullName,
		RequestID:           req.ID.String(),
		RequestTitle:        req.Title,
		RequestStatus:       string(req.Status),
		ActionPerformerName: actorName,
		Comments:            comments,
		IsApproved:          approved,
	})
	if err != nil {
		return Message{}, err
	}

	verdict := "Rejected"
	if approved {
		verdict = "Approved"
	}
	return Message{
		RequestID: req.ID,
		To:        snap.Requester.EmailAddress(),
		ToName:    snap.Requester.FullName,
		Subject:   fmt.Sprintf("Request %s: %s", verdict, req.Title),
		HTMLBody:  body,
	}, nil
}

func (r *Renderer) execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}
