package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cotizador-api/internal/application/quote"
	"github.com/jhoicas/cotizador-api/internal/domain/entity"
	"github.com/jhoicas/cotizador-api/internal/infrastructure/pdf"
)

func TestGenerateQuotePDF_DocumentoValido(t *testing.T) {
	q := &entity.Quote{
		ID:              "q-1",
		Number:          "COT-7",
		Date:            time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC),
		ClientNIT:       "900123456",
		ClientName:      "Ferretería Central",
		ClientCity:      "Bogotá",
		SellerName:      "Carlos Vendedor",
		PaymentTermDays: 30,
		Status:          entity.QuoteStatusSent,
		Lines: []entity.QuoteLine{{
			ID: "l-1", Position: 1, Quantity: 2, Reference: "TP-01", Description: "Taladro percutor",
			DeliveryLabel: "Inmediata", UnitOfMeasure: "UN",
			UnitCost: decimal.NewFromInt(100000), UnitSale: decimal.NewFromInt(120000),
			TaxRate: decimal.NewFromInt(19), Total: decimal.NewFromInt(240000),
		}},
	}

	out, err := pdf.NewMarotoPDFGenerator().GenerateQuotePDF(context.Background(), q,
		quote.CompanyInfo{Name: "Ferretería Demo SAS", NIT: "901000000-1"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateQuotePDF_SinLineasYSinEmpresa(t *testing.T) {
	q := &entity.Quote{Number: "COT-8", Date: time.Now(), ClientName: "Cliente contado"}
	out, err := pdf.NewMarotoPDFGenerator().GenerateQuotePDF(context.Background(), q, quote.CompanyInfo{})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestGenerateQuotePDF_Nil(t *testing.T) {
	_, err := pdf.NewMarotoPDFGenerator().GenerateQuotePDF(context.Background(), nil, quote.CompanyInfo{})
	assert.Error(t, err)
}
