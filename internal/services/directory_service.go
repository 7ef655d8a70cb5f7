package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/academyhub/backend/internal/models"
	"github.com/academyhub/backend/internal/validation"
	"go.uber.org/zap"
)

// StudentRepository is the interface that wraps methods for students table data access
type StudentRepository interface {
	// GetAll retrieves all students
	//
	// "ctx" is the context for the request.
	//
	// Returns a list of students and an error if any.
	GetAll(ctx context.Context) ([]models.Student, error)
	// ExistsByNIF checks if a student with the given NIF exists
	//
	// "ctx" is the context for the request.
	// "nif" is the normalized NIF.
	//
	// Returns a boolean and an error if any.
	ExistsByNIF(ctx context.Context, nif string) (bool, error)
	// Create creates a new student and sets its ID
	//
	// "ctx" is the context for the request.
	// "student" is the student to create.
	//
	// Returns an error if any.
	Create(ctx context.Context, student *models.Student) error
}

// CourseRepository is the interface that wraps methods for courses table data access
type CourseRepository interface {
	// GetAll retrieves all courses
	GetAll(ctx context.Context) ([]models.Course, error)
}

// InvoiceRepository is the interface that wraps methods for invoices table data access
type InvoiceRepository interface {
	// GetAll retrieves all invoices
	GetAll(ctx context.Context) ([]models.Invoice, error)
}

type directoryService struct {
	students StudentRepository
	courses  CourseRepository
	invoices InvoiceRepository
	logger   *zap.Logger
}

// NewDirectoryService creates a new service for the academy's row sources
func NewDirectoryService(students StudentRepository, courses CourseRepository, invoices InvoiceRepository, logger *zap.Logger) *directoryService {
	return &directoryService{
		students: students,
		courses:  courses,
		invoices: invoices,
		logger:   logger,
	}
}

// ListStudents retrieves all students
func (s *directoryService) ListStudents(ctx context.Context) ([]models.Student, error) {
	students, err := s.students.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to get students", zap.Error(err))
		return nil, fmt.Errorf("failed to get students: %w", err)
	}
	return students, nil
}

// ListCourses retrieves all courses
func (s *directoryService) ListCourses(ctx context.Context) ([]models.Course, error) {
	courses, err := s.courses.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to get courses", zap.Error(err))
		return nil, fmt.Errorf("failed to get courses: %w", err)
	}
	return courses, nil
}

// ListInvoices retrieves all invoices
func (s *directoryService) ListInvoices(ctx context.Context) ([]models.Invoice, error) {
	invoices, err := s.invoices.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to get invoices", zap.Error(err))
		return nil, fmt.Errorf("failed to get invoices: %w", err)
	}
	return invoices, nil
}

// CreateStudent validates and creates a student.
//
// NIF and IBAN are normalized to upper case without spaces before they are checked
// and stored. A NIF can only be registered once.
func (s *directoryService) CreateStudent(ctx context.Context, req *models.CreateStudentRequest) (int, error) {
	normalized := *req
	normalized.Name = strings.TrimSpace(req.Name)
	normalized.Email = strings.TrimSpace(req.Email)
	normalized.NIF = normalizeIdentifier(req.NIF)
	normalized.IBAN = normalizeIdentifier(req.IBAN)

	if err := validation.Struct(normalized); err != nil {
		return 0, err
	}

	exists, err := s.students.ExistsByNIF(ctx, normalized.NIF)
	if err != nil {
		s.logger.Error("failed to check student nif", zap.Error(err))
		return 0, fmt.Errorf("failed to check student nif: %w", err)
	}
	if exists {
		return 0, models.ErrNIFTaken
	}

	student := &models.Student{
		Name:  normalized.Name,
		Email: normalized.Email,
		NIF:   normalized.NIF,
		IBAN:  normalized.IBAN,
		Phone: normalized.Phone,
	}
	if err := s.students.Create(ctx, student); err != nil {
		s.logger.Error("failed to create student", zap.Error(err))
		return 0, fmt.Errorf("failed to create student: %w", err)
	}

	return student.ID, nil
}

func normalizeIdentifier(s string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
}
