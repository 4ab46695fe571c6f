package quote

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cotizador-api/internal/application/dto"
	"github.com/jhoicas/cotizador-api/internal/application/ports"
	"github.com/jhoicas/cotizador-api/internal/domain"
	"github.com/jhoicas/cotizador-api/internal/domain/entity"
	"github.com/jhoicas/cotizador-api/internal/domain/pricing"
	"github.com/jhoicas/cotizador-api/internal/domain/repository"
	"github.com/jhoicas/cotizador-api/pkg/logger"
)

// DraftItem producto a agregar con utilidad y cantidad opcionales.
type DraftItem struct {
	Product  entity.Product
	Margin   decimal.NullDecimal
	Quantity int64
}

// DraftUseCase flujo de construcción de una cotización: cliente, productos, ediciones en
// línea y envío. Cada operación devuelve el borrador con los totales recalculados.
type DraftUseCase struct {
	drafts       repository.DraftRepository
	users        repository.UserRepository
	tx           TxRunner
	metrics      ports.Metrics
	log          *logger.Logger
	numberPrefix string
	now          func() time.Time
}

// NewDraftUseCase construye el caso de uso.
func NewDraftUseCase(
	drafts repository.DraftRepository,
	users repository.UserRepository,
	tx TxRunner,
	metrics ports.Metrics,
	log *logger.Logger,
	numberPrefix string,
) *DraftUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &DraftUseCase{
		drafts:       drafts,
		users:        users,
		tx:           tx,
		metrics:      metrics,
		log:          log,
		numberPrefix: numberPrefix,
		now:          time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *DraftUseCase) WithClock(now func() time.Time) *DraftUseCase {
	uc.now = now
	return uc
}

// CreateDraft crea un borrador vacío con plazo de contado.
func (uc *DraftUseCase) CreateDraft(ctx context.Context, ownerID string) (*dto.DraftResponse, error) {
	now := uc.now()
	d := &entity.Draft{
		ID:              uuid.New().String(),
		OwnerID:         ownerID,
		PaymentTermDays: 1,
		Lines:           []pricing.LineItem{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.drafts.Save(ctx, d); err != nil {
		return nil, err
	}
	uc.metrics.IncDraftOperation("create")
	return ToDraftResponse(d), nil
}

// GetDraft devuelve el borrador del usuario.
func (uc *DraftUseCase) GetDraft(ctx context.Context, ownerID, id string) (*dto.DraftResponse, error) {
	d, err := uc.load(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return ToDraftResponse(d), nil
}

// SelectClient guarda el snapshot del cliente, toma su plazo y resuelve el asesor: el usuario
// cuya cédula coincide con el código de vendedor del cliente o, si no hay, el usuario actual.
func (uc *DraftUseCase) SelectClient(ctx context.Context, ownerID, id string, client entity.Client) (*dto.DraftResponse, error) {
	seller, err := uc.resolveSeller(ownerID, client)
	if err != nil {
		return nil, err
	}
	return uc.mutate(ctx, ownerID, id, "select_client", func(d *entity.Draft) error {
		c := client
		d.Client = &c
		d.PaymentTermDays = client.PaymentTermDays
		if d.PaymentTermDays < 1 {
			d.PaymentTermDays = 1
		}
		if seller != nil {
			d.SellerID = seller.ID
			d.SellerCode = seller.IdentificationNumber
			d.SellerName = seller.Name
		} else {
			d.SellerID = ownerID
			d.SellerCode = client.SellerCode
			d.SellerName = ""
		}
		return nil
	})
}

// SetPaymentTerm cambia el plazo en días.
func (uc *DraftUseCase) SetPaymentTerm(ctx context.Context, ownerID, id string, days int) (*dto.DraftResponse, error) {
	if days < 1 {
		return nil, ErrInvalidPaymentTerm
	}
	return uc.mutate(ctx, ownerID, id, "payment_term", func(d *entity.Draft) error {
		d.PaymentTermDays = days
		return nil
	})
}

// AddProduct agrega un producto del catálogo al final (utilidad 20% y cantidad 1 por defecto).
func (uc *DraftUseCase) AddProduct(ctx context.Context, ownerID, id string, item DraftItem) (*dto.DraftResponse, error) {
	return uc.AppendItems(ctx, ownerID, id, []DraftItem{item})
}

// AppendItems agrega varias líneas en una sola escritura. Si alguna es inválida no se agrega ninguna.
func (uc *DraftUseCase) AppendItems(ctx context.Context, ownerID, id string, items []DraftItem) (*dto.DraftResponse, error) {
	return uc.mutate(ctx, ownerID, id, "add_line", func(d *entity.Draft) error {
		agg := d.Aggregator()
		for _, it := range items {
			if _, err := agg.AddLineWith(it.Product.CatalogItem(), it.Margin, it.Quantity); err != nil {
				return fmt.Errorf("%s: %w", it.Product.Reference, err)
			}
		}
		d.ApplyLines(agg)
		return nil
	})
}

// UpdateLine edita un campo de la línea index (base 0).
func (uc *DraftUseCase) UpdateLine(ctx context.Context, ownerID, id string, index int, req dto.UpdateLineRequest) (*dto.DraftResponse, error) {
	edit := pricing.Edit{Field: pricing.Field(req.Field), Text: req.Text}
	if edit.Field != pricing.FieldDeliveryLabel {
		if req.Amount == nil {
			return nil, ErrMissingAmount
		}
		edit.Amount = *req.Amount
	}
	return uc.mutate(ctx, ownerID, id, "update_line", func(d *entity.Draft) error {
		agg := d.Aggregator()
		if err := agg.UpdateLine(index, edit); err != nil {
			return err
		}
		d.ApplyLines(agg)
		return nil
	})
}

// RemoveLine elimina la línea index (base 0).
func (uc *DraftUseCase) RemoveLine(ctx context.Context, ownerID, id string, index int) (*dto.DraftResponse, error) {
	return uc.mutate(ctx, ownerID, id, "remove_line", func(d *entity.Draft) error {
		agg := d.Aggregator()
		if err := agg.RemoveLine(index); err != nil {
			return err
		}
		d.ApplyLines(agg)
		return nil
	})
}

// DiscardDraft elimina el borrador sin enviarlo.
func (uc *DraftUseCase) DiscardDraft(ctx context.Context, ownerID, id string) error {
	if _, err := uc.load(ctx, ownerID, id); err != nil {
		return err
	}
	if err := uc.drafts.Delete(ctx, id); err != nil {
		return err
	}
	uc.metrics.IncDraftOperation("discard")
	return nil
}

// SubmitDraft persiste la cotización (cabecera y líneas en una transacción) con estado
// Enviada. Solo si la persistencia tiene éxito se elimina el borrador; ante un error queda
// intacto para reintentar.
func (uc *DraftUseCase) SubmitDraft(ctx context.Context, ownerID, id string) (*dto.QuoteResponse, error) {
	d, err := uc.load(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if d.Client == nil {
		return nil, ErrDraftWithoutClient
	}
	if len(d.Lines) == 0 {
		return nil, ErrDraftEmpty
	}

	q := uc.buildQuote(d)
	err = uc.tx.RunQuote(ctx, func(quotes repository.QuoteRepository) error {
		n, err := quotes.NextNumber(ctx)
		if err != nil {
			return err
		}
		q.Number = uc.numberPrefix + strconv.FormatInt(n, 10)
		return quotes.Create(ctx, q)
	})
	if err != nil {
		uc.metrics.IncQuoteSubmitted(ports.ResultError)
		uc.log.Error().Err(err).Str("draft_id", id).Msg("envío de cotización fallido; el borrador se conserva")
		return nil, err
	}
	uc.metrics.IncQuoteSubmitted(ports.ResultOK)

	if err := uc.drafts.Delete(ctx, id); err != nil {
		uc.log.Warn().Err(err).Str("draft_id", id).Str("quote", q.Number).Msg("cotización enviada pero el borrador no se pudo eliminar")
	}
	uc.log.Info().Str("quote", q.Number).Str("client", q.ClientNIT).Str("value", q.Value.String()).Msg("cotización enviada")
	return ToQuoteResponse(q, true), nil
}

func (uc *DraftUseCase) buildQuote(d *entity.Draft) *entity.Quote {
	totals := pricing.ComputeTotals(d.Lines)
	now := uc.now()
	q := &entity.Quote{
		ID:              uuid.New().String(),
		Date:            now,
		ClientNIT:       d.Client.NIT,
		ClientName:      d.Client.Name,
		ClientEmail:     d.Client.Email,
		ClientCity:      d.Client.City,
		SellerID:        d.SellerID,
		SellerCode:      d.SellerCode,
		SellerName:      d.SellerName,
		Value:           pricing.ToInteger(totals.TotalSale),
		TaxTotal:        pricing.ToInteger(totals.TotalTax),
		TotalWithTax:    pricing.ToInteger(totals.TotalWithTax),
		PaymentTermDays: d.PaymentTermDays,
		Status:          entity.QuoteStatusSent,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if q.SellerID == "" {
		q.SellerID = d.OwnerID
	}
	q.Lines = make([]entity.QuoteLine, 0, len(d.Lines))
	for i, l := range d.Lines {
		q.Lines = append(q.Lines, entity.QuoteLine{
			ID:            uuid.New().String(),
			QuoteID:       q.ID,
			Position:      i + 1,
			Quantity:      l.Quantity,
			Description:   l.Description,
			Reference:     l.Reference,
			DeliveryLabel: l.DeliveryLabel,
			Total:         pricing.ToInteger(l.LineSubtotal),
			UnitOfMeasure: l.UnitOfMeasure,
			UnitCost:      l.UnitCost,
			UnitSale:      l.UnitSalePrice,
			TaxRate:       l.TaxRate,
		})
	}
	return q
}

func (uc *DraftUseCase) resolveSeller(ownerID string, client entity.Client) (*entity.User, error) {
	if client.HasSeller() {
		u, err := uc.users.GetByIdentification(client.SellerCode)
		if err != nil {
			return nil, err
		}
		if u != nil {
			return u, nil
		}
	}
	return uc.users.GetByID(ownerID)
}

func (uc *DraftUseCase) load(ctx context.Context, ownerID, id string) (*entity.Draft, error) {
	d, err := uc.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	return d, nil
}

func (uc *DraftUseCase) mutate(ctx context.Context, ownerID, id, op string, fn func(d *entity.Draft) error) (*dto.DraftResponse, error) {
	d, err := uc.drafts.Update(ctx, id, func(d *entity.Draft) error {
		if d.OwnerID != ownerID {
			return domain.ErrForbidden
		}
		if err := fn(d); err != nil {
			return err
		}
		d.UpdatedAt = uc.now()
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.IncDraftOperation(op)
	return ToDraftResponse(d), nil
}
