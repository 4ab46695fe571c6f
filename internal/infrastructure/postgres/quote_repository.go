package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/cotizador-api/internal/domain"
	"github.com/jhoicas/cotizador-api/internal/domain/entity"
	"github.com/jhoicas/cotizador-api/internal/domain/pricing"
	"github.com/jhoicas/cotizador-api/internal/domain/repository"
)

var _ repository.QuoteRepository = (*QuoteRepo)(nil)

const quoteColumns = `id, number, date, client_nit, client_name, client_email, client_city,
	seller_id, seller_code, seller_name, value, tax_total, total_with_tax, payment_term_days,
	status, description, project_id, created_at, updated_at`

const lineColumns = `id, quote_id, position, quantity, description, reference, delivery_label,
	total, unit_of_measure, unit_cost, unit_sale, tax_rate`

// QuoteRepo implementación de QuoteRepository (usable con pool o tx).
type QuoteRepo struct {
	q Querier
}

// NewQuoteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewQuoteRepository(q Querier) *QuoteRepo {
	return &QuoteRepo{q: q}
}

// NextNumber consecutivo desde quote_number_seq. Un número consumido por una transacción
// abortada no se reutiliza.
func (r *QuoteRepo) NextNumber(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT nextval('quote_number_seq')`).Scan(&n); err != nil {
		return 0, fmt.Errorf("next quote number: %w", err)
	}
	return n, nil
}

// Create persiste cabecera y líneas.
func (r *QuoteRepo) Create(ctx context.Context, quote *entity.Quote) error {
	query := `INSERT INTO quotes (` + quoteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(ctx, query,
		quote.ID, quote.Number, quote.Date, quote.ClientNIT, quote.ClientName, quote.ClientEmail,
		quote.ClientCity, quote.SellerID, quote.SellerCode, quote.SellerName, quote.Value,
		quote.TaxTotal, quote.TotalWithTax, quote.PaymentTermDays, quote.Status, quote.Description,
		quote.ProjectID, quote.CreatedAt, quote.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: número de cotización %s", domain.ErrDuplicate, quote.Number)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: asesor o proyecto inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert quote: %w", err)
	}

	lineQuery := `INSERT INTO quote_lines (` + lineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	for _, l := range quote.Lines {
		_, err := r.q.Exec(ctx, lineQuery,
			l.ID, quote.ID, l.Position, l.Quantity, l.Description, l.Reference, l.DeliveryLabel,
			l.Total, l.UnitOfMeasure, l.UnitCost, l.UnitSale, l.TaxRate,
		)
		if err != nil {
			return fmt.Errorf("insert quote line %d: %w", l.Position, err)
		}
	}
	return nil
}

// GetByID cabecera con líneas en orden de posición.
func (r *QuoteRepo) GetByID(ctx context.Context, id string) (*entity.Quote, error) {
	if !validUUID(id) {
		return nil, nil
	}
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE id = $1`
	q, err := scanQuote(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quote: %w", err)
	}
	lines, err := r.lines(ctx, id)
	if err != nil {
		return nil, err
	}
	q.Lines = lines
	return q, nil
}

// List página de cabeceras (sin líneas), más recientes primero, y el total que cumple el filtro.
func (r *QuoteRepo) List(ctx context.Context, f repository.QuoteFilter) ([]*entity.Quote, int, error) {
	where, args := quoteWhere(f)

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM quotes`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count quotes: %w", err)
	}

	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf(`SELECT %s FROM quotes%s ORDER BY date DESC, number DESC LIMIT $%d OFFSET $%d`,
		quoteColumns, where, len(args)-1, len(args))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list quotes: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Quote, 0)
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan quote: %w", err)
		}
		list = append(list, q)
	}
	return list, total, rows.Err()
}

func quoteWhere(f repository.QuoteFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(col, val string) {
		if val == "" {
			return
		}
		args = append(args, val)
		conds = append(conds, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	add("seller_id::text", f.SellerID)
	add("status", f.Status)
	add("client_nit", f.ClientNIT)
	add("project_id::text", f.ProjectID)
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// UpdateHeader aplica solo los campos no nil.
func (r *QuoteRepo) UpdateHeader(ctx context.Context, id string, upd repository.QuoteHeaderUpdate) error {
	if !validUUID(id) {
		return domain.ErrNotFound
	}
	sets := []string{"updated_at = $2"}
	args := []any{id, time.Now()}
	if upd.Status != nil {
		args = append(args, *upd.Status)
		sets = append(sets, fmt.Sprintf("status = $%d", len(args)))
	}
	if upd.Description != nil {
		args = append(args, *upd.Description)
		sets = append(sets, fmt.Sprintf("description = $%d", len(args)))
	}
	if upd.ProjectID != nil {
		args = append(args, nullIfEmpty(*upd.ProjectID))
		sets = append(sets, fmt.Sprintf("project_id = $%d", len(args)))
	}
	tag, err := r.q.Exec(ctx, `UPDATE quotes SET `+strings.Join(sets, ", ")+` WHERE id = $1`, args...)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: proyecto", domain.ErrNotFound)
		}
		return fmt.Errorf("update quote: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetLine una línea de la cotización.
func (r *QuoteRepo) GetLine(ctx context.Context, quoteID, lineID string) (*entity.QuoteLine, error) {
	if !validUUID(quoteID, lineID) {
		return nil, nil
	}
	query := `SELECT ` + lineColumns + ` FROM quote_lines WHERE quote_id = $1 AND id = $2`
	l, err := scanLine(r.q.QueryRow(ctx, query, quoteID, lineID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quote line: %w", err)
	}
	return l, nil
}

// UpdateLineValues guarda costo, venta y total de la línea.
func (r *QuoteRepo) UpdateLineValues(ctx context.Context, line *entity.QuoteLine) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE quote_lines SET unit_cost = $3, unit_sale = $4, total = $5 WHERE quote_id = $1 AND id = $2`,
		line.QuoteID, line.ID, line.UnitCost, line.UnitSale, line.Total,
	)
	if err != nil {
		return fmt.Errorf("update quote line: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// RefreshTotals recalcula la cabecera con el motor de precios a partir de las líneas guardadas.
func (r *QuoteRepo) RefreshTotals(ctx context.Context, quoteID string) error {
	lines, err := r.lines(ctx, quoteID)
	if err != nil {
		return err
	}
	q := entity.Quote{Lines: lines}
	t := q.Totals()
	tag, err := r.q.Exec(ctx,
		`UPDATE quotes SET value = $2, tax_total = $3, total_with_tax = $4, updated_at = $5 WHERE id = $1`,
		quoteID, pricing.ToInteger(t.TotalSale), pricing.ToInteger(t.TotalTax), pricing.ToInteger(t.TotalWithTax), time.Now(),
	)
	if err != nil {
		return fmt.Errorf("refresh quote totals: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *QuoteRepo) lines(ctx context.Context, quoteID string) ([]entity.QuoteLine, error) {
	rows, err := r.q.Query(ctx, `SELECT `+lineColumns+` FROM quote_lines WHERE quote_id = $1 ORDER BY position`, quoteID)
	if err != nil {
		return nil, fmt.Errorf("list quote lines: %w", err)
	}
	defer rows.Close()
	var out []entity.QuoteLine
	for rows.Next() {
		l, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quote line: %w", err)
		}
		out = append(out, *l)
	}
	return out, rows.Err()
}

func scanQuote(row pgx.Row) (*entity.Quote, error) {
	var q entity.Quote
	err := row.Scan(
		&q.ID, &q.Number, &q.Date, &q.ClientNIT, &q.ClientName, &q.ClientEmail, &q.ClientCity,
		&q.SellerID, &q.SellerCode, &q.SellerName, &q.Value, &q.TaxTotal, &q.TotalWithTax,
		&q.PaymentTermDays, &q.Status, &q.Description, &q.ProjectID, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func scanLine(row pgx.Row) (*entity.QuoteLine, error) {
	var l entity.QuoteLine
	err := row.Scan(
		&l.ID, &l.QuoteID, &l.Position, &l.Quantity, &l.Description, &l.Reference, &l.DeliveryLabel,
		&l.Total, &l.UnitOfMeasure, &l.UnitCost, &l.UnitSale, &l.TaxRate,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}
