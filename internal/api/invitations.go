package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/nkiryanov/eventdesk/internal/models"
	"github.com/nkiryanov/eventdesk/internal/transport"
)

const invitationsPath = "/Invitations"

type Invitations struct {
	c *transport.Client
}

func (i *Invitations) Templates(ctx context.Context, eventID int64) ([]models.InvitationTemplate, error) {
	return get[[]models.InvitationTemplate](ctx, i.c, invitationsPath+"/Templates", eventQuery(eventID))
}

func (i *Invitations) Settings(ctx context.Context, eventID int64) (models.InvitationSettings, error) {
	return get[models.InvitationSettings](ctx, i.c, invitationsPath+"/Settings", eventQuery(eventID))
}

func (i *Invitations) UpdateSettings(ctx context.Context, eventID int64, in models.InvitationSettingsInput) (models.StatusMessage, error) {
	return call[models.StatusMessage](ctx, i.c, http.MethodPost, invitationsPath+"/Settings", eventQuery(eventID), in)
}

func (i *Invitations) SetActiveTemplate(ctx context.Context, eventID int64, templateID int64) (models.StatusMessage, error) {
	params := eventQuery(eventID)
	params.Set("templateId", id(templateID))
	return call[models.StatusMessage](ctx, i.c, http.MethodPost, invitationsPath+"/ActiveTemplate", params, nil)
}

// UploadCover sends the image as the "file" field of a multipart form
func (i *Invitations) UploadCover(ctx context.Context, eventID int64, filename string, image io.Reader) (models.InvitationUploadResult, error) {
	var form bytes.Buffer
	w := multipart.NewWriter(&form)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return models.InvitationUploadResult{}, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return models.InvitationUploadResult{}, fmt.Errorf("read cover image: %w", err)
	}
	if err := w.Close(); err != nil {
		return models.InvitationUploadResult{}, fmt.Errorf("close form: %w", err)
	}

	req, err := i.c.NewRequest(ctx, http.MethodPost, invitationsPath+"/Cover/Upload", eventQuery(eventID), nil)
	if err != nil {
		return models.InvitationUploadResult{}, err
	}
	body := form.Bytes()
	req.Body = io.NopCloser(bytes.NewReader(body))
	req.GetBody = func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(body)), nil }
	req.ContentLength = int64(len(body))
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := i.c.Do(req)
	if err != nil {
		return models.InvitationUploadResult{}, err
	}
	defer resp.Body.Close() // nolint:errcheck

	var out models.InvitationUploadResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, fmt.Errorf("decode cover upload response: %w", err)
	}
	return out, nil
}

// RenderGuest builds the invitation of one guest. force skips the rendered copy the backend keeps
func (i *Invitations) RenderGuest(ctx context.Context, eventID int64, guestID int64, force bool) (models.InvitationRenderResult, error) {
	params := eventQuery(eventID)
	params.Set("guestId", id(guestID))
	params.Set("force", strconv.FormatBool(force))
	return get[models.InvitationRenderResult](ctx, i.c, invitationsPath+"/Render/Guest", params)
}

func (i *Invitations) ExportAll(ctx context.Context, eventID int64, force bool) (models.InvitationExportResult, error) {
	params := eventQuery(eventID)
	params.Set("force", strconv.FormatBool(force))
	return get[models.InvitationExportResult](ctx, i.c, invitationsPath+"/Export/All", params)
}
