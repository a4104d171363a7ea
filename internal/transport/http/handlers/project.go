package http_handlers

import (
	"net/http"

	"github.com/baechuer/peoplehub/internal/application/project"
	"github.com/baechuer/peoplehub/internal/domain"
	"github.com/baechuer/peoplehub/internal/transport/http/dto"
	"github.com/baechuer/peoplehub/internal/transport/http/response"
)

const msgProjectUpdated = "Project updated successfully"

type ProjectHandler struct {
	svc *project.Service
}

func NewProjectHandler(svc *project.Service) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	var req dto.CreateProjectRequest
	if !decode(w, r, &req) {
		return
	}

	d, err := h.svc.Create(r.Context(), a, req.Input())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.Created(w, dto.ProjectResponse{Message: project.MsgProjectCreated, Project: dto.NewProjectView(d)})
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	f := domain.ProjectFilter{
		Status:    domain.ProjectStatus(q.Get("status")),
		Priority:  domain.Priority(q.Get("priority")),
		ManagerID: q.Get("manager"),
		LeadID:    q.Get("lead"),
	}

	res, err := h.svc.List(r.Context(), a, f, pageRequest(r))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.ProjectListResponse{
		Projects:      dto.NewProjectViews(res.Projects),
		TotalProjects: res.Total,
		PageInfo:      res.Page,
	})
}

func (h *ProjectHandler) Tree(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.Tree(r.Context())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	if entries == nil {
		entries = []project.TreeEntry{}
	}
	response.OK(w, entries)
}

func (h *ProjectHandler) ByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathParam(w, r, "userId")
	if !ok {
		return
	}
	ds, err := h.svc.ByUser(r.Context(), userID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewProjectViews(ds))
}

func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := pathParam(w, r, "id")
	if !ok {
		return
	}

	d, err := h.svc.Get(r.Context(), a, id)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.ProjectResponse{Project: dto.NewProjectView(d)})
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := pathParam(w, r, "id")
	if !ok {
		return
	}
	var req dto.UpdateProjectRequest
	if !decode(w, r, &req) {
		return
	}

	d, err := h.svc.Update(r.Context(), a, id, req.Input())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.ProjectResponse{Message: msgProjectUpdated, Project: dto.NewProjectView(d)})
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := pathParam(w, r, "id")
	if !ok {
		return
	}

	msg, err := h.svc.Delete(r.Context(), a, id)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, response.Message{Message: msg})
}
