package quote_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/jhoicas/cotizador-api/internal/domain"
	"github.com/jhoicas/cotizador-api/internal/domain/entity"
	"github.com/jhoicas/cotizador-api/internal/domain/repository"
)

// memDrafts DraftRepository en memoria; guarda JSON para imitar el almacén real.
type memDrafts struct {
	mu        sync.Mutex
	data      map[string][]byte
	deleteErr error
}

func newMemDrafts() *memDrafts { return &memDrafts{data: map[string][]byte{}} }

func (m *memDrafts) Save(_ context.Context, d *entity.Draft) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[d.ID] = raw
	return nil
}

func (m *memDrafts) Get(_ context.Context, id string) (*entity.Draft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	var d entity.Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (m *memDrafts) Update(ctx context.Context, id string, fn func(d *entity.Draft) error) (*entity.Draft, error) {
	d, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(d); err != nil {
		return nil, err
	}
	return d, m.Save(ctx, d)
}

func (m *memDrafts) Delete(_ context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, id)
	return nil
}

func (m *memDrafts) exists(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[id]
	return ok
}

// memUsers UserRepository en memoria.
type memUsers struct {
	users []*entity.User
}

func (m *memUsers) Create(u *entity.User) error { m.users = append(m.users, u); return nil }
func (m *memUsers) GetByID(id string) (*entity.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}
func (m *memUsers) GetByEmail(email string) (*entity.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (m *memUsers) GetByIdentification(id string) (*entity.User, error) {
	for _, u := range m.users {
		if u.IdentificationNumber == id {
			return u, nil
		}
	}
	return nil, nil
}
func (m *memUsers) Update(*entity.User) error             { return nil }
func (m *memUsers) List(int, int) ([]*entity.User, error) { return m.users, nil }

// memQuotes QuoteRepository en memoria.
type memQuotes struct {
	mu        sync.Mutex
	seq       int64
	quotes    map[string]*entity.Quote
	createErr error
}

func newMemQuotes() *memQuotes { return &memQuotes{quotes: map[string]*entity.Quote{}} }

func (m *memQuotes) NextNumber(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	return m.seq, nil
}

func (m *memQuotes) Create(_ context.Context, q *entity.Quote) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *q
	cp.Lines = append([]entity.QuoteLine(nil), q.Lines...)
	m.quotes[q.ID] = &cp
	return nil
}

func (m *memQuotes) GetByID(_ context.Context, id string) (*entity.Quote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.quotes[id]
	if !ok {
		return nil, nil
	}
	cp := *q
	cp.Lines = append([]entity.QuoteLine(nil), q.Lines...)
	return &cp, nil
}

func (m *memQuotes) List(_ context.Context, f repository.QuoteFilter) ([]*entity.Quote, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Quote
	for _, q := range m.quotes {
		if f.Status != "" && q.Status != f.Status {
			continue
		}
		out = append(out, q)
	}
	return out, len(out), nil
}

func (m *memQuotes) UpdateHeader(_ context.Context, id string, upd repository.QuoteHeaderUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.quotes[id]
	if !ok {
		return domain.ErrNotFound
	}
	if upd.Status != nil {
		q.Status = *upd.Status
	}
	if upd.Description != nil {
		q.Description = *upd.Description
	}
	if upd.ProjectID != nil {
		if *upd.ProjectID == "" {
			q.ProjectID = nil
		} else {
			p := *upd.ProjectID
			q.ProjectID = &p
		}
	}
	return nil
}

func (m *memQuotes) GetLine(_ context.Context, quoteID, lineID string) (*entity.QuoteLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.quotes[quoteID]
	if !ok {
		return nil, nil
	}
	for _, l := range q.Lines {
		if l.ID == lineID {
			cp := l
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memQuotes) UpdateLineValues(_ context.Context, line *entity.QuoteLine) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	q := m.quotes[line.QuoteID]
	for i := range q.Lines {
		if q.Lines[i].ID == line.ID {
			q.Lines[i] = *line
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memQuotes) RefreshTotals(_ context.Context, quoteID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.quotes[quoteID]
	if !ok {
		return domain.ErrNotFound
	}
	t := q.Totals()
	q.Value = t.TotalSale.Round(0)
	q.TaxTotal = t.TotalTax.Round(0)
	q.TotalWithTax = t.TotalWithTax.Round(0)
	return nil
}

// fakeTx ejecuta fn directamente contra memQuotes.
type fakeTx struct {
	quotes *memQuotes
	calls  int
}

func (f *fakeTx) RunQuote(_ context.Context, fn func(quotes repository.QuoteRepository) error) error {
	f.calls++
	return fn(f.quotes)
}

// memProjects ProjectRepository mínimo.
type memProjects struct {
	projects map[string]*entity.Project
}

func (m *memProjects) Create(_ context.Context, p *entity.Project) error {
	m.projects[p.ID] = p
	return nil
}
func (m *memProjects) GetByID(_ context.Context, id string) (*entity.Project, error) {
	return m.projects[id], nil
}
func (m *memProjects) List(context.Context, repository.ProjectFilter) ([]*entity.Project, error) {
	return nil, nil
}
func (m *memProjects) UpdateStatus(context.Context, string, string) error { return nil }

var errDB = errors.New("conexión perdida")
