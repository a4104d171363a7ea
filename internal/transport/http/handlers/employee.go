package http_handlers

import (
	"net/http"

	"github.com/baechuer/peoplehub/internal/application/employee"
	"github.com/baechuer/peoplehub/internal/domain"
	"github.com/baechuer/peoplehub/internal/transport/http/dto"
	"github.com/baechuer/peoplehub/internal/transport/http/response"
)

const msgEmployeeUpdated = "Employee updated successfully"

type EmployeeHandler struct {
	svc *employee.Service
}

func NewEmployeeHandler(svc *employee.Service) *EmployeeHandler {
	return &EmployeeHandler{svc: svc}
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	var req dto.CreateEmployeeRequest
	if !decode(w, r, &req) {
		return
	}

	res, err := h.svc.Create(r.Context(), a, employee.CreateInput{
		Name:          req.Name,
		ContactNo:     req.ContactNo,
		Email:         req.Email,
		Gender:        req.Gender,
		Department:    req.Department,
		SubDepartment: req.SubDepartment,
		Username:      req.Username,
		Password:      req.Password,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.Created(w, dto.CreateEmployeeResponse{
		Message:     res.Message,
		Employee:    dto.NewEmployeeView(res.Employee),
		UserCreated: res.UserCreated,
	})
}

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := domain.EmployeeFilter{
		Department:    q.Get("department"),
		SubDepartment: q.Get("subDepartment"),
		Gender:        domain.Gender(q.Get("gender")),
	}

	res, err := h.svc.List(r.Context(), f, pageRequest(r))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.EmployeeListResponse{
		Employees:      dto.NewEmployeeViews(res.Employees),
		TotalEmployees: res.Total,
		PageInfo:       res.Page,
	})
}

func (h *EmployeeHandler) Emails(w http.ResponseWriter, r *http.Request) {
	emails, err := h.svc.ListEmails(r.Context())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	if emails == nil {
		emails = []string{}
	}
	response.OK(w, dto.EmailsResponse{Count: len(emails), Emails: emails})
}

func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathParam(w, r, "id")
	if !ok {
		return
	}
	e, err := h.svc.Get(r.Context(), id)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.EmployeeResponse{Employee: dto.NewEmployeeView(e)})
}

func (h *EmployeeHandler) Leaves(w http.ResponseWriter, r *http.Request) {
	id, ok := pathParam(w, r, "id")
	if !ok {
		return
	}
	l, err := h.svc.Leaves(r.Context(), id)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.LeavesResponse{EmployeeID: id, Leaves: l})
}

func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := pathParam(w, r, "id")
	if !ok {
		return
	}
	var req dto.UpdateEmployeeRequest
	if !decode(w, r, &req) {
		return
	}

	e, err := h.svc.Update(r.Context(), a, id, employee.UpdateInput{
		Name:          req.Name,
		ContactNo:     req.ContactNo,
		Email:         req.Email,
		Gender:        req.Gender,
		Department:    req.Department,
		SubDepartment: req.SubDepartment,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.EmployeeResponse{Message: msgEmployeeUpdated, Employee: dto.NewEmployeeView(e)})
}

func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
