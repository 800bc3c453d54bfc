package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
	"motodealer-api/models"
	"motodealer-api/repositories"
	"motodealer-api/utils"
)

var (
	errNotAvailable = errors.New("motorcycle not available")
	errSaleNotFound = errors.New("sale not found")
)

const (
	msgNotAvailable = "Motorcycle is not available for sale"
	msgSaleNotFound = "Sale not found"
)

type CreateSaleCommand struct {
	MotorcycleID  string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	CustomerCPF   string
	SalePrice     decimal.Decimal
	PaymentMethod string
	Installments  int
	Status        models.SaleStatus
	Notes         string
}

func (cmd *CreateSaleCommand) normalize() error {
	if utils.IsBlank(cmd.MotorcycleID) || utils.IsBlank(cmd.CustomerName) ||
		utils.IsBlank(cmd.CustomerEmail) || !cmd.SalePrice.IsPositive() {
		return utils.NewValidationError("Required fields: motorcycle_id, customer_name, customer_email and sale_price")
	}
	installments, status, err := normalizeTerms(cmd.Installments, cmd.Status, models.SaleCompleted)
	if err != nil {
		return err
	}
	cmd.Installments, cmd.Status = installments, status
	return nil
}

type UpdateSaleCommand struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	CustomerCPF   string
	SalePrice     decimal.Decimal
	PaymentMethod string
	Installments  int
	Status        models.SaleStatus
	Notes         string
}

func normalizeTerms(installments int, status, fallback models.SaleStatus) (int, models.SaleStatus, error) {
	if installments == 0 {
		installments = 1
	}
	if installments < 1 {
		return 0, "", utils.NewValidationError("installments must be at least 1")
	}
	if status == "" {
		status = fallback
	}
	if !status.Valid() {
		return 0, "", utils.NewValidationError("status must be one of completed, pending, cancelled")
	}
	return installments, status, nil
}

// SaleService owns the coupling between a sale and the status of the motorcycle it
// sells. Inserting a sale and marking the motorcycle sold, as well as deleting a sale
// and releasing the motorcycle, always happen in one transaction.
type SaleService struct {
	db          *gorm.DB
	sales       *repositories.SaleRepository
	motorcycles *repositories.MotorcycleRepository
	mailer      Mailer
	tracer      trace.Tracer
}

func NewSaleService(db *gorm.DB, mailer Mailer) *SaleService {
	return &SaleService{
		db:          db,
		sales:       repositories.NewSaleRepository(db),
		motorcycles: repositories.NewMotorcycleRepository(db),
		mailer:      mailer,
		tracer:      otel.Tracer("motodealer-api/services/sales"),
	}
}

// CreateSale sells an available motorcycle. A motorcycle that does not exist and one
// that is sold or in maintenance are reported with the same conflict.
func (s *SaleService) CreateSale(ctx context.Context, cmd CreateSaleCommand, actorID string) (*models.Sale, error) {
	ctx, span := s.tracer.Start(ctx, "sales.create",
		trace.WithAttributes(
			attribute.String("motorcycle.id", cmd.MotorcycleID),
			attribute.String("actor.id", actorID),
		),
	)
	defer span.End()

	if err := cmd.normalize(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	sale := &models.Sale{
		ID:            uuid.New().String(),
		MotorcycleID:  cmd.MotorcycleID,
		CustomerName:  cmd.CustomerName,
		CustomerEmail: cmd.CustomerEmail,
		CustomerPhone: cmd.CustomerPhone,
		CustomerCPF:   cmd.CustomerCPF,
		SalePrice:     cmd.SalePrice,
		PaymentMethod: cmd.PaymentMethod,
		Installments:  cmd.Installments,
		SaleDate:      now,
		Status:        cmd.Status,
		Notes:         cmd.Notes,
		CreatedBy:     actorID,
	}
	span.SetAttributes(attribute.String("sale.id", sale.ID))

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		motorcycles := s.motorcycles.WithTx(tx)

		if _, err := motorcycles.FindAvailableForUpdate(ctx, cmd.MotorcycleID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotAvailable
			}
			return fmt.Errorf("load motorcycle: %w", err)
		}

		if err := s.sales.WithTx(tx).Create(ctx, sale); err != nil {
			return fmt.Errorf("insert sale: %w", err)
		}

		// Conditional flip: a concurrent sale that slipped past the lock loses here
		flipped, err := motorcycles.TransitionStatus(ctx, cmd.MotorcycleID, models.MotorcycleAvailable, models.MotorcycleSold)
		if err != nil {
			return fmt.Errorf("mark motorcycle sold: %w", err)
		}
		if !flipped {
			return errNotAvailable
		}
		return nil
	})
	if errors.Is(err, errNotAvailable) {
		span.SetAttributes(attribute.Bool("sale.conflict", true))
		return nil, utils.NewConflictError(msgNotAvailable)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "create sale failed")
		return nil, utils.NewInternalError("Failed to create sale", err)
	}

	created, err := s.sales.FindByID(ctx, sale.ID)
	if err != nil {
		return nil, utils.NewInternalError("Failed to load created sale", err)
	}

	log.WithFields(log.Fields{
		"sale_id":       created.ID,
		"motorcycle_id": created.MotorcycleID,
		"created_by":    actorID,
	}).Info("Sale created")

	if s.mailer != nil {
		receipt := *created
		sendAsync("sale_receipt", func() error { return s.mailer.SendSaleReceipt(&receipt) })
	}

	return created, nil
}

// DeleteSale removes a sale and returns its motorcycle to available, whatever status
// the motorcycle had at that moment.
func (s *SaleService) DeleteSale(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "sales.delete", trace.WithAttributes(attribute.String("sale.id", id)))
	defer span.End()

	var sale *models.Sale
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sales := s.sales.WithTx(tx)

		var err error
		sale, err = sales.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errSaleNotFound
			}
			return fmt.Errorf("load sale: %w", err)
		}

		if _, err := sales.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete sale: %w", err)
		}

		if _, err := s.motorcycles.WithTx(tx).SetStatus(ctx, sale.MotorcycleID, models.MotorcycleAvailable); err != nil {
			return fmt.Errorf("release motorcycle: %w", err)
		}
		return nil
	})
	if errors.Is(err, errSaleNotFound) {
		return utils.NewNotFoundError(msgSaleNotFound)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "delete sale failed")
		return utils.NewInternalError("Failed to delete sale", err)
	}

	span.SetAttributes(attribute.String("motorcycle.id", sale.MotorcycleID))
	fields := log.Fields{"sale_id": id, "motorcycle_id": sale.MotorcycleID}
	switch {
	case sale.Motorcycle == nil:
		log.WithFields(fields).Warn("Deleted sale referenced a motorcycle that no longer exists")
	case sale.Motorcycle.Status != models.MotorcycleSold:
		// TODO: restore the pre-sale status once sales record it instead of forcing available
		log.WithFields(fields).WithField("previous_status", sale.Motorcycle.Status).
			Warn("Motorcycle was not sold when its sale was deleted, status forced to available")
	default:
		log.WithFields(fields).Info("Sale deleted, motorcycle available again")
	}
	return nil
}

// UpdateSale replaces the customer and payment fields of a sale. The motorcycle is
// left untouched.
func (s *SaleService) UpdateSale(ctx context.Context, id string, cmd UpdateSaleCommand) (*models.Sale, error) {
	ctx, span := s.tracer.Start(ctx, "sales.update", trace.WithAttributes(attribute.String("sale.id", id)))
	defer span.End()

	if utils.IsBlank(cmd.CustomerName) || utils.IsBlank(cmd.CustomerEmail) || !cmd.SalePrice.IsPositive() {
		return nil, utils.NewValidationError("Required fields: customer_name, customer_email and sale_price")
	}

	sale, err := s.sales.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError(msgSaleNotFound)
		}
		return nil, utils.NewInternalError("Failed to load sale", err)
	}

	installments, status, err := normalizeTerms(cmd.Installments, cmd.Status, sale.Status)
	if err != nil {
		return nil, err
	}

	sale.CustomerName = cmd.CustomerName
	sale.CustomerEmail = cmd.CustomerEmail
	sale.CustomerPhone = cmd.CustomerPhone
	sale.CustomerCPF = cmd.CustomerCPF
	sale.SalePrice = cmd.SalePrice
	sale.PaymentMethod = cmd.PaymentMethod
	sale.Installments = installments
	sale.Status = status
	sale.Notes = cmd.Notes

	if err := s.sales.Save(ctx, sale); err != nil {
		span.RecordError(err)
		return nil, utils.NewInternalError("Failed to update sale", err)
	}
	return sale, nil
}

func (s *SaleService) GetSale(ctx context.Context, id string) (*models.Sale, error) {
	sale, err := s.sales.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError(msgSaleNotFound)
		}
		return nil, utils.NewInternalError("Failed to load sale", err)
	}
	return sale, nil
}

func (s *SaleService) ListSales(ctx context.Context) ([]models.Sale, error) {
	sales, err := s.sales.FindAll(ctx)
	if err != nil {
		return nil, utils.NewInternalError("Failed to fetch sales", err)
	}
	return sales, nil
}
