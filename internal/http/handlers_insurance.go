package http

import (
	"log/slog"
	"net/http"

	"homeledger/internal/core"
	"homeledger/internal/insurance"
)

func (s *Server) handleInsuranceCalculate(w http.ResponseWriter, r *http.Request) {
	var in insurance.Input
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.MonthlySalary <= 0 {
		writeError(w, http.StatusUnprocessableEntity, "monthly_salary must be positive")
		return
	}

	writeJSON(w, http.StatusOK, s.rates.Calculate(in))
}

// employeeCost is one roster line of the HR summary.
type employeeCost struct {
	Employee core.Employee    `json:"employee"`
	Result   insurance.Result `json:"result"`
}

type hrSummaryResponse struct {
	Summary   insurance.Summary `json:"summary"`
	Employees []employeeCost    `json:"employees"`
}

func (s *Server) handleHRSummary(w http.ResponseWriter, r *http.Request) {
	employees, err := s.employees.ListEmployees(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List employees error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list employees")
		return
	}

	resp := hrSummaryResponse{Employees: make([]employeeCost, 0, len(employees))}
	inputs := make([]insurance.Input, 0, len(employees))
	for _, e := range employees {
		in := insurance.Input{
			MonthlySalary:        e.MonthlySalary,
			InsuredSalary:        e.InsuredSalary,
			Dependents:           e.Dependents,
			VoluntaryPensionRate: e.VoluntaryPensionRate,
		}
		inputs = append(inputs, in)
		resp.Employees = append(resp.Employees, employeeCost{
			Employee: e,
			Result:   s.rates.Calculate(in),
		})
	}
	resp.Summary = s.rates.MonthlyHRCostSummary(inputs)

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := s.employees.ListEmployees(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List employees error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list employees")
		return
	}
	if employees == nil {
		employees = []core.Employee{}
	}
	writeJSON(w, http.StatusOK, employees)
}

func (s *Server) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	var e core.Employee
	if err := decodeJSON(w, r, &e); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	e.ID = 0
	e.Name = sanitizeInput(e.Name)
	if err := e.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	created, err := s.employees.CreateEmployee(r.Context(), e)
	if err != nil {
		slog.ErrorContext(r.Context(), "Create employee error", "error", err, "name", e.Name)
		writeError(w, http.StatusInternalServerError, "failed to create employee")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid employee id")
		return
	}

	e, err := s.employees.GetEmployee(r.Context(), id)
	if err != nil {
		writeError(w, storageStatus(err), "employee not found")
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid employee id")
		return
	}

	var e core.Employee
	if err := decodeJSON(w, r, &e); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	e.ID = id
	e.Name = sanitizeInput(e.Name)
	if err := e.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	updated, err := s.employees.UpdateEmployee(r.Context(), e)
	if err != nil {
		status := storageStatus(err)
		if status == http.StatusInternalServerError {
			slog.ErrorContext(r.Context(), "Update employee error", "error", err, "id", id)
			writeError(w, status, "failed to update employee")
			return
		}
		writeError(w, status, "employee not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid employee id")
		return
	}

	if err := s.employees.DeleteEmployee(r.Context(), id); err != nil {
		status := storageStatus(err)
		if status == http.StatusInternalServerError {
			slog.ErrorContext(r.Context(), "Delete employee error", "error", err, "id", id)
			writeError(w, status, "failed to delete employee")
			return
		}
		writeError(w, status, "employee not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
