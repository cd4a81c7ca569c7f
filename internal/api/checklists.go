package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/nkiryanov/eventdesk/internal/models"
	"github.com/nkiryanov/eventdesk/internal/transport"
)

const checklistsPath = "/Checklists"

// Checklists covers event sections and tasks plus the templates they are seeded from
type Checklists struct {
	c *transport.Client
}

func (cl *Checklists) Sections(ctx context.Context, p models.ChecklistSectionParameters) (models.Page[models.ChecklistSection], error) {
	return list[models.ChecklistSection](ctx, cl.c, checklistsPath+"/Sections", p)
}

func (cl *Checklists) SectionOptions(ctx context.Context, eventID int64) ([]models.ChecklistSectionOption, error) {
	return get[[]models.ChecklistSectionOption](ctx, cl.c, checklistsPath+"/Sections/Options/"+id(eventID), nil)
}

func (cl *Checklists) Section(ctx context.Context, sectionID int64) (models.ChecklistSection, error) {
	return get[models.ChecklistSection](ctx, cl.c, checklistsPath+"/Sections/Get/"+id(sectionID), nil)
}

func (cl *Checklists) CreateSection(ctx context.Context, in models.ChecklistSectionInput) (models.ChecklistSection, error) {
	return send[models.ChecklistSection](ctx, cl.c, http.MethodPost, checklistsPath+"/Sections/Create", in)
}

func (cl *Checklists) UpdateSection(ctx context.Context, sectionID int64, in models.ChecklistSectionInput) error {
	return do(ctx, cl.c, http.MethodPut, checklistsPath+"/Sections/Update/"+id(sectionID), nil, in)
}

func (cl *Checklists) RemoveSection(ctx context.Context, sectionID int64) error {
	return do(ctx, cl.c, http.MethodDelete, checklistsPath+"/Sections/Remove/"+id(sectionID), nil, nil)
}

func (cl *Checklists) ReorderSections(ctx context.Context, eventID int64, order []models.OrderUpdate) error {
	return do(ctx, cl.c, http.MethodPut, checklistsPath+"/Sections/Reorder/"+id(eventID), nil, order)
}

func (cl *Checklists) Tasks(ctx context.Context, p models.ChecklistTaskParameters) (models.Page[models.ChecklistTask], error) {
	return list[models.ChecklistTask](ctx, cl.c, checklistsPath+"/Tasks", p)
}

func (cl *Checklists) Task(ctx context.Context, taskID int64) (models.ChecklistTask, error) {
	return get[models.ChecklistTask](ctx, cl.c, checklistsPath+"/Tasks/Get/"+id(taskID), nil)
}

// CreateTask places the task after the existing ones, currentCount is how many the section has
func (cl *Checklists) CreateTask(ctx context.Context, in models.ChecklistTaskInput, currentCount int) (models.ChecklistTask, error) {
	in.Order = currentCount + 1
	return send[models.ChecklistTask](ctx, cl.c, http.MethodPost, checklistsPath+"/Tasks/Create", in)
}

func (cl *Checklists) UpdateTask(ctx context.Context, taskID int64, in models.ChecklistTaskInput) error {
	return do(ctx, cl.c, http.MethodPut, checklistsPath+"/Tasks/Update/"+id(taskID), nil, in)
}

func (cl *Checklists) ToggleTask(ctx context.Context, taskID int64) error {
	return do(ctx, cl.c, http.MethodPut, checklistsPath+"/Tasks/ToggleComplete/"+id(taskID), nil, nil)
}

func (cl *Checklists) RemoveTask(ctx context.Context, taskID int64) error {
	return do(ctx, cl.c, http.MethodDelete, checklistsPath+"/Tasks/Remove/"+id(taskID), nil, nil)
}

func (cl *Checklists) ReorderTasks(ctx context.Context, sectionID int64, order []models.OrderUpdate) error {
	return do(ctx, cl.c, http.MethodPut, checklistsPath+"/Tasks/Reorder/"+id(sectionID), nil, order)
}

// CurrentTemplate is the template a new event of this type starts from. partnerID 0 means the caller's own
func (cl *Checklists) CurrentTemplate(ctx context.Context, eventTypeID int64, partnerID int64) (models.ChecklistTemplateDetail, error) {
	var params url.Values
	if partnerID != 0 {
		params = url.Values{"partnerId": {id(partnerID)}}
	}
	return get[models.ChecklistTemplateDetail](ctx, cl.c, checklistsPath+"/Templates/Current/"+id(eventTypeID), params)
}

func (cl *Checklists) Templates(ctx context.Context, eventTypeID int64, includeGlobalFallback bool) ([]models.ChecklistTemplate, error) {
	params := url.Values{"includeGlobalFallback": {strconv.FormatBool(includeGlobalFallback)}}
	return get[[]models.ChecklistTemplate](ctx, cl.c, checklistsPath+"/Templates/"+id(eventTypeID), params)
}

func (cl *Checklists) Template(ctx context.Context, templateID int64) (models.ChecklistTemplateDetail, error) {
	return get[models.ChecklistTemplateDetail](ctx, cl.c, checklistsPath+"/Templates/Get/"+id(templateID), nil)
}

func (cl *Checklists) UpdateTemplate(ctx context.Context, templateID int64, in models.ChecklistTemplateUpdateInput) error {
	return do(ctx, cl.c, http.MethodPut, checklistsPath+"/Templates/"+id(templateID), nil, in)
}

func (cl *Checklists) CloneTemplateToPartner(ctx context.Context, templateID int64, partnerID int64) (models.ChecklistTemplateDetail, error) {
	params := url.Values{"partnerId": {id(partnerID)}}
	return call[models.ChecklistTemplateDetail](ctx, cl.c, http.MethodPost, checklistsPath+"/Templates/CloneToPartner/"+id(templateID), params, nil)
}

func (cl *Checklists) BootstrapPartnerTemplates(ctx context.Context, partnerID int64) error {
	return do(ctx, cl.c, http.MethodPost, checklistsPath+"/Templates/BootstrapPartner/"+id(partnerID), nil, nil)
}

func (cl *Checklists) SetDefaultTemplate(ctx context.Context, templateID int64) error {
	return do(ctx, cl.c, http.MethodPost, checklistsPath+"/Templates/SetDefault/"+id(templateID), nil, nil)
}

func (cl *Checklists) AddTemplateSection(ctx context.Context, templateID int64, in models.ChecklistTemplateSectionInput) (models.ChecklistTemplateSection, error) {
	return send[models.ChecklistTemplateSection](ctx, cl.c, http.MethodPost, checklistsPath+"/Templates/"+id(templateID)+"/Sections", in)
}

func (cl *Checklists) UpdateTemplateSection(ctx context.Context, sectionID int64, in models.ChecklistTemplateSectionInput) error {
	return do(ctx, cl.c, http.MethodPut, checklistsPath+"/Templates/Sections/"+id(sectionID), nil, in)
}

func (cl *Checklists) RemoveTemplateSection(ctx context.Context, sectionID int64) error {
	return do(ctx, cl.c, http.MethodDelete, checklistsPath+"/Templates/Sections/"+id(sectionID), nil, nil)
}

func (cl *Checklists) ReorderTemplateSections(ctx context.Context, templateID int64, order []models.OrderUpdate) error {
	return do(ctx, cl.c, http.MethodPut, checklistsPath+"/Templates/Sections/Reorder/"+id(templateID), nil, order)
}

func (cl *Checklists) AddTemplateTask(ctx context.Context, sectionID int64, in models.ChecklistTemplateTaskInput) (models.ChecklistTemplateTask, error) {
	return send[models.ChecklistTemplateTask](ctx, cl.c, http.MethodPost, checklistsPath+"/Templates/Sections/"+id(sectionID)+"/Tasks", in)
}

func (cl *Checklists) UpdateTemplateTask(ctx context.Context, taskID int64, in models.ChecklistTemplateTaskInput) error {
	return do(ctx, cl.c, http.MethodPut, checklistsPath+"/Templates/Tasks/"+id(taskID), nil, in)
}

func (cl *Checklists) RemoveTemplateTask(ctx context.Context, taskID int64) error {
	return do(ctx, cl.c, http.MethodDelete, checklistsPath+"/Templates/Tasks/"+id(taskID), nil, nil)
}

func (cl *Checklists) ReorderTemplateTasks(ctx context.Context, sectionID int64, order []models.OrderUpdate) error {
	return do(ctx, cl.c, http.MethodPut, checklistsPath+"/Templates/Tasks/Reorder/"+id(sectionID), nil, order)
}
