package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"aurora/internal/access"
	"aurora/internal/models/db_models"
	"aurora/internal/models/request_models"
	"aurora/internal/models/response_models"
	"aurora/internal/repositories"
	"aurora/pkg/utils"
)

type AppointmentServiceInterface interface {
	CreateAppointment(ctx context.Context, caller access.Principal, request request_models.CreateAppointmentRequest) (*response_models.AppointmentResponse, error)
	ListAppointments(ctx context.Context, caller access.Principal, page, pageSize int) ([]response_models.AppointmentResponse, error)
	GetAppointment(ctx context.Context, caller access.Principal, id string) (*response_models.AppointmentResponse, error)
	UpdateAppointment(ctx context.Context, caller access.Principal, id string, request request_models.UpdateAppointmentRequest) (*response_models.AppointmentResponse, error)
	DeleteAppointment(ctx context.Context, caller access.Principal, id string) error
}

type AppointmentService struct {
	appointmentRepo repositories.AppointmentRepository
	gateway         *access.Gateway
	log             *zap.Logger
}

func NewAppointmentService(appointmentRepo repositories.AppointmentRepository, gateway *access.Gateway, log *zap.Logger) *AppointmentService {
	return &AppointmentService{
		appointmentRepo: appointmentRepo,
		gateway:         gateway,
		log:             log.Named("appointments"),
	}
}

func (s *AppointmentService) CreateAppointment(ctx context.Context, caller access.Principal, request request_models.CreateAppointmentRequest) (*response_models.AppointmentResponse, error) {
	if !s.gateway.AuthorizeOwn(caller, access.ResourceAppointment, access.ActionWrite) {
		return nil, denied(caller)
	}

	if request.ScheduledAt == nil || request.ScheduledAt.IsZero() {
		verr := utils.NewValidationError()
		verr.Add("scheduled_at", msgRequired)
		return nil, verr
	}

	owner, err := uuid.Parse(caller.UserID)
	if err != nil {
		return nil, utils.ErrUnauthenticated
	}

	appointment := &db_models.Appointment{
		AccountID:   owner,
		ScheduledAt: request.ScheduledAt.Unix(),
		Status:      db_models.AppointmentRequested,
		Reason:      strings.TrimSpace(request.Reason),
		Notes:       request.Notes,
	}
	if err := s.appointmentRepo.Create(ctx, appointment); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	s.log.Info("appointment requested", zap.String("appointment_id", appointment.ID.String()))

	resp := response_models.NewAppointmentResponse(appointment)
	return &resp, nil
}

// ListAppointments returns the caller's appointments, or every appointment
// for staff, latest first.
func (s *AppointmentService) ListAppointments(ctx context.Context, caller access.Principal, page, pageSize int) ([]response_models.AppointmentResponse, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	var owner string
	switch {
	case s.gateway.Authorize(caller, access.ResourceAppointment, access.ActionRead, ""):
	case s.gateway.AuthorizeOwn(caller, access.ResourceAppointment, access.ActionRead):
		owner = caller.UserID
	default:
		return nil, denied(caller)
	}

	appointments, err := s.appointmentRepo.ListByAccount(ctx, owner, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	return lo.Map(appointments, func(a db_models.Appointment, _ int) response_models.AppointmentResponse {
		return response_models.NewAppointmentResponse(&a)
	}), nil
}

// load hides appointments of other accounts behind ErrNotFound.
func (s *AppointmentService) load(ctx context.Context, caller access.Principal, id string, act access.Action) (*db_models.Appointment, error) {
	if !caller.Authenticated() {
		return nil, utils.ErrUnauthenticated
	}
	id, ok := parseID(id)
	if !ok {
		return nil, utils.ErrNotFound
	}

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if appointment == nil {
		return nil, utils.ErrNotFound
	}

	if !s.gateway.Authorize(caller, access.ResourceAppointment, act, appointment.AccountID.String()) {
		return nil, utils.ErrNotFound
	}
	return appointment, nil
}

func (s *AppointmentService) GetAppointment(ctx context.Context, caller access.Principal, id string) (*response_models.AppointmentResponse, error) {
	appointment, err := s.load(ctx, caller, id, access.ActionRead)
	if err != nil {
		return nil, err
	}
	resp := response_models.NewAppointmentResponse(appointment)
	return &resp, nil
}

func (s *AppointmentService) UpdateAppointment(ctx context.Context, caller access.Principal, id string, request request_models.UpdateAppointmentRequest) (*response_models.AppointmentResponse, error) {
	appointment, err := s.load(ctx, caller, id, access.ActionWrite)
	if err != nil {
		return nil, err
	}

	verr := utils.NewValidationError()
	if request.Status != nil {
		status := db_models.AppointmentStatus(strings.ToUpper(strings.TrimSpace(*request.Status)))
		switch {
		case !status.Valid():
			verr.Add("status", fmt.Sprintf("%q is not a valid choice.", *request.Status))
		case status != appointment.Status && status != db_models.AppointmentCancelled &&
			!s.gateway.Authorize(caller, access.ResourceAppointment, access.ActionManage, appointment.AccountID.String()):
			return nil, utils.ErrForbidden
		default:
			appointment.Status = status
		}
	}
	if request.ScheduledAt != nil {
		if request.ScheduledAt.IsZero() {
			verr.Add("scheduled_at", msgRequired)
		} else {
			appointment.ScheduledAt = request.ScheduledAt.Unix()
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if request.Reason != nil {
		appointment.Reason = strings.TrimSpace(*request.Reason)
	}
	if request.Notes != nil {
		appointment.Notes = *request.Notes
	}

	if err := s.appointmentRepo.Save(ctx, appointment); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	resp := response_models.NewAppointmentResponse(appointment)
	return &resp, nil
}

func (s *AppointmentService) DeleteAppointment(ctx context.Context, caller access.Principal, id string) error {
	appointment, err := s.load(ctx, caller, id, access.ActionDelete)
	if err != nil {
		return err
	}

	if err := s.appointmentRepo.Delete(ctx, appointment.ID.String()); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return nil
}
