package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/academyhub/backend/internal/models"
	"github.com/academyhub/backend/internal/table"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const dateLayout = "02/01/2006"

// DirectoryService is the interface that wraps methods for the academy's row sources
type DirectoryService interface {
	// ListStudents retrieves all students
	//
	// "ctx" is the context for the request.
	//
	// Returns a list of students and an error if any.
	ListStudents(ctx context.Context) ([]models.Student, error)
	// ListCourses retrieves all courses
	//
	// "ctx" is the context for the request.
	//
	// Returns a list of courses and an error if any.
	ListCourses(ctx context.Context) ([]models.Course, error)
	// ListInvoices retrieves all invoices
	//
	// "ctx" is the context for the request.
	//
	// Returns a list of invoices and an error if any.
	ListInvoices(ctx context.Context) ([]models.Invoice, error)
	// CreateStudent validates and creates a student
	//
	// "ctx" is the context for the request.
	// "req" is the request to create a student.
	//
	// Returns the ID of the created student and an error if any.
	CreateStudent(ctx context.Context, req *models.CreateStudentRequest) (int, error)
}

// DirectoryHandler serves the students, courses and invoices tables
type DirectoryHandler struct {
	BaseHandler
	service  DirectoryService
	students *tableEndpoint[models.Student]
	courses  *tableEndpoint[models.Course]
	invoices *tableEndpoint[models.Invoice]
}

// NewDirectoryHandler creates a new directory handler
func NewDirectoryHandler(svc DirectoryService, logger *zap.Logger) *DirectoryHandler {
	h := &DirectoryHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
	h.students = &tableEndpoint[models.Student]{
		base:  &h.BaseHandler,
		name:  "students",
		title: "Students",
		table: StudentsTable(),
		load:  svc.ListStudents,
	}
	h.courses = &tableEndpoint[models.Course]{
		base:  &h.BaseHandler,
		name:  "courses",
		title: "Courses",
		table: CoursesTable(),
		load:  svc.ListCourses,
	}
	h.invoices = &tableEndpoint[models.Invoice]{
		base:  &h.BaseHandler,
		name:  "invoices",
		title: "Invoices",
		table: InvoicesTable(),
		load:  svc.ListInvoices,
	}
	return h
}

// StudentsTable returns the table configuration of the students page
func StudentsTable() *table.Table[models.Student] {
	return table.New([]table.Column[models.Student]{
		{Header: "Name", Key: "name", Sortable: true},
		{Header: "Email", Key: "email", Sortable: true},
		{Header: "NIF", Key: "nif"},
		{Header: "Phone", Accessor: func(s models.Student) string {
			if s.Phone == nil {
				return "-"
			}
			return *s.Phone
		}},
		{Header: "Enrolled", Key: "enrolledAt", Sortable: true, Accessor: func(s models.Student) string {
			return formatDate(s.EnrolledAt)
		}},
	},
		table.WithEmptyMessage[models.Student]("No students found"),
		table.WithRowActions(func(s models.Student) []table.Action {
			return []table.Action{
				{Label: "Invoices", Href: "/invoices?" + url.Values{table.ParamSearch: {s.Name}}.Encode()},
			}
		}),
	)
}

// CoursesTable returns the table configuration of the courses page
func CoursesTable() *table.Table[models.Course] {
	return table.New([]table.Column[models.Course]{
		{Header: "Title", Key: "title", Sortable: true},
		{Header: "Teacher", Key: "teacher", Sortable: true},
		{Header: "Level", Key: "level", Sortable: true},
		{Header: "Students", Key: "students", Sortable: true},
		{Header: "Price", Key: "price", Sortable: true, Accessor: func(c models.Course) string {
			return formatAmount(c.Price)
		}},
		{Header: "Start date", Key: "startDate", Sortable: true, Accessor: func(c models.Course) string {
			return formatDate(c.StartDate)
		}},
	}, table.WithEmptyMessage[models.Course]("No courses found"))
}

// InvoicesTable returns the table configuration of the invoices page
func InvoicesTable() *table.Table[models.Invoice] {
	return table.New([]table.Column[models.Invoice]{
		{Header: "Number", Key: "number", Sortable: true},
		{Header: "Student", Key: "studentName", Sortable: true},
		{Header: "Amount", Key: "amount", Sortable: true, Accessor: func(i models.Invoice) string {
			return formatAmount(i.Amount)
		}},
		{Header: "Status", Key: "status", Sortable: true},
		{Header: "Issued", Key: "issuedAt", Sortable: true, Accessor: func(i models.Invoice) string {
			return formatDate(i.IssuedAt)
		}},
		{Header: "Paid", Accessor: func(i models.Invoice) string {
			if i.PaidAt == nil {
				return "-"
			}
			return formatDate(*i.PaidAt)
		}},
	},
		table.WithEmptyMessage[models.Invoice]("No invoices found"),
		table.WithRowActions(func(i models.Invoice) []table.Action {
			return []table.Action{
				{Label: "Student", Href: "/students?" + url.Values{table.ParamSearch: {i.StudentName}}.Encode()},
			}
		}),
	)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(dateLayout)
}

func formatAmount(amount float64) string {
	return fmt.Sprintf("%.2f €", amount)
}

// RegisterRoutes registers the JSON and CSV routes of the directory tables
func (h *DirectoryHandler) RegisterRoutes(r chi.Router) {
	r.Route("/students", func(r chi.Router) {
		r.Get("/", h.GetStudents)
		r.Post("/", h.CreateStudent)
		r.Get("/export", h.ExportStudents)
	})
	r.Route("/courses", func(r chi.Router) {
		r.Get("/", h.GetCourses)
		r.Get("/export", h.ExportCourses)
	})
	r.Route("/invoices", func(r chi.Router) {
		r.Get("/", h.GetInvoices)
		r.Get("/export", h.ExportInvoices)
	})
}

// RegisterPageRoutes registers the HTML pages of the directory tables
func (h *DirectoryHandler) RegisterPageRoutes(r chi.Router) {
	r.Get("/students", h.students.Page)
	r.Get("/courses", h.courses.Page)
	r.Get("/invoices", h.invoices.Page)
}

// GetStudents handles GET /api/v1/students
// @Summary Get students table
// @Description Get the current page of the students table. Search runs over every field, then sort, then pagination.
// @Tags directory
// @Produce json
// @Param q query string false "Search term"
// @Param sort query string false "Sort key (name, email, enrolledAt)"
// @Param dir query string false "Sort direction (asc, desc)"
// @Param page query int false "Page number (default: 1)"
// @Param open query string false "ID of the expanded card"
// @Param vw query int false "Viewport width in pixels"
// @Success 200 {object} table.View[models.Student]
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /students [get]
func (h *DirectoryHandler) GetStudents(w http.ResponseWriter, r *http.Request) {
	h.students.View(w, r)
}

// ExportStudents handles GET /api/v1/students/export
// @Summary Export students
// @Description Export every student matching the search, in the requested order, as CSV
// @Tags directory
// @Produce text/csv
// @Param q query string false "Search term"
// @Param sort query string false "Sort key"
// @Param dir query string false "Sort direction (asc, desc)"
// @Success 200 {string} string "CSV file"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /students/export [get]
func (h *DirectoryHandler) ExportStudents(w http.ResponseWriter, r *http.Request) {
	h.students.Export(w, r)
}

// CreateStudent handles POST /api/v1/students
// @Summary Create a student
// @Description Register a student. NIF and IBAN are validated and normalized.
// @Tags directory
// @Accept json
// @Produce json
// @Param request body models.CreateStudentRequest true "Student creation request"
// @Success 201 {object} map[string]any "Student created successfully"
// @Failure 400 {object} map[string]any "Invalid request body or validation errors"
// @Failure 409 {object} map[string]string "NIF already registered"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /students [post]
func (h *DirectoryHandler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	var req models.CreateStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := h.service.CreateStudent(r.Context(), &req)
	if err != nil {
		h.RespondServiceError(w, err, "create student")
		return
	}

	h.RespondJSON(w, http.StatusCreated, map[string]any{
		"id":      id,
		"message": "student created successfully",
	})
}

// GetCourses handles GET /api/v1/courses
// @Summary Get courses table
// @Description Get the current page of the courses table
// @Tags directory
// @Produce json
// @Param q query string false "Search term"
// @Param sort query string false "Sort key (title, teacher, level, students, price, startDate)"
// @Param dir query string false "Sort direction (asc, desc)"
// @Param page query int false "Page number (default: 1)"
// @Param open query string false "ID of the expanded card"
// @Param vw query int false "Viewport width in pixels"
// @Success 200 {object} table.View[models.Course]
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses [get]
func (h *DirectoryHandler) GetCourses(w http.ResponseWriter, r *http.Request) {
	h.courses.View(w, r)
}

// ExportCourses handles GET /api/v1/courses/export
// @Summary Export courses
// @Description Export every course matching the search, in the requested order, as CSV
// @Tags directory
// @Produce text/csv
// @Param q query string false "Search term"
// @Param sort query string false "Sort key"
// @Param dir query string false "Sort direction (asc, desc)"
// @Success 200 {string} string "CSV file"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses/export [get]
func (h *DirectoryHandler) ExportCourses(w http.ResponseWriter, r *http.Request) {
	h.courses.Export(w, r)
}

// GetInvoices handles GET /api/v1/invoices
// @Summary Get invoices table
// @Description Get the current page of the invoices table
// @Tags directory
// @Produce json
// @Param q query string false "Search term"
// @Param sort query string false "Sort key (number, studentName, amount, status, issuedAt)"
// @Param dir query string false "Sort direction (asc, desc)"
// @Param page query int false "Page number (default: 1)"
// @Param open query string false "ID of the expanded card"
// @Param vw query int false "Viewport width in pixels"
// @Success 200 {object} table.View[models.Invoice]
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /invoices [get]
func (h *DirectoryHandler) GetInvoices(w http.ResponseWriter, r *http.Request) {
	h.invoices.View(w, r)
}

// ExportInvoices handles GET /api/v1/invoices/export
// @Summary Export invoices
// @Description Export every invoice matching the search, in the requested order, as CSV
// @Tags directory
// @Produce text/csv
// @Param q query string false "Search term"
// @Param sort query string false "Sort key"
// @Param dir query string false "Sort direction (asc, desc)"
// @Success 200 {string} string "CSV file"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /invoices/export [get]
func (h *DirectoryHandler) ExportInvoices(w http.ResponseWriter, r *http.Request) {
	h.invoices.Export(w, r)
}
